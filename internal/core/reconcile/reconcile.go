// Package reconcile compares a fiscal manifest with the loading note of the same shipment.
package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/fuel-docs/internal/common"
	"github.com/joseph-ayodele/fuel-docs/internal/entity"
)

// Compared field names, as reported in ValidationResult.Field.
const (
	FieldNetWeight   = "net_weight"
	FieldVolume      = "volume"
	FieldDescription = "product_description"
)

// Policy holds absolute tolerances. A difference up to the tolerance matches; up to the
// error band it is a warning; beyond it an error.
type Policy struct {
	WeightToleranceKg float64 `json:"weight_tolerance_kg" validate:"gte=0"`
	WeightErrorKg     float64 `json:"weight_error_kg" validate:"gtefield=WeightToleranceKg"`
	VolumeToleranceL  float64 `json:"volume_tolerance_l" validate:"gte=0"`
	VolumeErrorL      float64 `json:"volume_error_l" validate:"gtefield=VolumeToleranceL"`
}

func DefaultPolicy() Policy {
	return Policy{
		WeightToleranceKg: 50,
		WeightErrorKg:     150,
		VolumeToleranceL:  100,
		VolumeErrorL:      300,
	}
}

func PolicyFromConfig(cfg common.ReconcileConfig) Policy {
	return Policy{
		WeightToleranceKg: cfg.WeightToleranceKg,
		WeightErrorKg:     cfg.WeightErrorKg,
		VolumeToleranceL:  cfg.VolumeToleranceL,
		VolumeErrorL:      cfg.VolumeErrorL,
	}
}

func (p Policy) Validate() error {
	return common.ValidateStruct(p)
}

// Reconcile emits one result per comparable field present on both documents, in a fixed
// order. Fields missing on either side are skipped.
func Reconcile(fiscal entity.FiscalManifestRecord, note entity.LoadingNoteRecord, p Policy) []entity.ValidationResult {
	var out []entity.ValidationResult
	if r, ok := numeric(FieldNetWeight, fiscal.ProductInfo.NetWeightKg, note.NetWeightKg, p.WeightToleranceKg, p.WeightErrorKg); ok {
		out = append(out, r)
	}
	if r, ok := numeric(FieldVolume, fiscal.ProductInfo.VolumeAmbientLiters, note.VolumeLiters, p.VolumeToleranceL, p.VolumeErrorL); ok {
		out = append(out, r)
	}
	if r, ok := textual(FieldDescription, fiscal.ProductInfo.Description, note.ProductDescription); ok {
		out = append(out, r)
	}
	return out
}

func numeric(field string, a, b, tolerance, errorBand float64) (entity.ValidationResult, bool) {
	if a <= 0 || b <= 0 {
		return entity.ValidationResult{}, false
	}
	diff := math.Abs(a - b)
	r := entity.ValidationResult{
		Field:      field,
		ValueA:     strconv.FormatFloat(a, 'f', -1, 64),
		ValueB:     strconv.FormatFloat(b, 'f', -1, 64),
		Difference: diff,
	}
	switch {
	case diff <= tolerance:
		r.IsMatch, r.Severity = true, entity.SeverityInfo
	case diff <= errorBand:
		r.Severity = entity.SeverityWarning
	default:
		r.Severity = entity.SeverityError
	}
	return r, true
}

// textual matches when either value contains the other, ignoring case. A mismatch is
// only ever a warning.
func textual(field, a, b string) (entity.ValidationResult, bool) {
	ta, tb := strings.TrimSpace(a), strings.TrimSpace(b)
	if ta == "" || tb == "" {
		return entity.ValidationResult{}, false
	}
	la, lb := strings.ToLower(ta), strings.ToLower(tb)
	r := entity.ValidationResult{Field: field, ValueA: ta, ValueB: tb, Severity: entity.SeverityWarning}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		r.IsMatch, r.Severity = true, entity.SeverityInfo
	}
	return r, true
}

// Summary counts results per severity.
type Summary struct {
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func Summarize(results []entity.ValidationResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Severity {
		case entity.SeverityInfo:
			s.Info++
		case entity.SeverityWarning:
			s.Warnings++
		case entity.SeverityError:
			s.Errors++
		}
	}
	return s
}

// OK reports whether no result needs attention.
func (s Summary) OK() bool {
	return s.Warnings == 0 && s.Errors == 0
}
