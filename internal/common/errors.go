package common

import (
	"errors"
	"fmt"
	"strings"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrNoData is returned when the input is empty or nothing in it is recognized.
	ErrNoData = errors.New("no data extracted")
	// ErrNoRecord is returned when mandatory identifying fields are missing.
	ErrNoRecord     = errors.New("no record")
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")
	ErrInternal     = errors.New("internal error")
)

// Error codes carried by AppError.
const (
	CodeNoData      = "NO_DATA"
	CodeNoRecord    = "NO_RECORD"
	CodeConfig      = "CONFIG_ERROR"
	CodeSchema      = "SCHEMA_ERROR"
	CodePriceTable  = "PRICE_TABLE_ERROR"
	CodeUnsupported = "UNSUPPORTED"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NoDataError reports an empty or unrecognized document of the given kind.
func NoDataError(kind string) error {
	return NewAppError(CodeNoData, kind+": nothing recognized in input", ErrNoData)
}

// NoRecordError reports which mandatory fields were missing.
func NoRecordError(kind string, missing []string) error {
	return NewAppError(CodeNoRecord, fmt.Sprintf("%s: missing %s", kind, strings.Join(missing, ", ")), ErrNoRecord)
}
