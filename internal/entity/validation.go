package entity

// Severity grades a reconciliation finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ValidationResult is the outcome of comparing one field across two documents.
type ValidationResult struct {
	Field      string   `json:"field"`
	ValueA     string   `json:"value_a"`
	ValueB     string   `json:"value_b"`
	Difference float64  `json:"difference,omitempty"`
	IsMatch    bool     `json:"is_match"`
	Severity   Severity `json:"severity"`
}
