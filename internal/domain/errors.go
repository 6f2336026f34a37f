package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidParameter is the category every parameter validation failure
// unwraps to.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrNonFinite reports a numeric input that is NaN or infinite. It is raised
// at the collaborator boundary, before values reach the engine.
var ErrNonFinite = fmt.Errorf("non-finite numeric input: %w", ErrInvalidParameter)

// DecimalFromFloat converts a float input to a decimal parameter, rejecting
// NaN and infinities with the field that carried them.
func DecimalFromFloat(field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, ErrNonFinite)
	}
	return decimal.NewFromFloat(v), nil
}

// ParameterError describes a single violated input invariant with enough
// context to correct it.
type ParameterError struct {
	Field      string
	Constraint string
}

// NewParameterError builds a ParameterError for the given field.
func NewParameterError(field, constraint string) *ParameterError {
	return &ParameterError{Field: field, Constraint: constraint}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Constraint)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
