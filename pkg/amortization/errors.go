package amortization

import (
	"errors"
	"fmt"
)

// Validation failures. Each one identifies the offending input so callers can
// branch on it with errors.Is.
var (
	ErrInvalidRate                = errors.New("rate must be a non-negative number")
	ErrInvalidTerm                = errors.New("term must be a whole number of months between 1 and 1200")
	ErrInvalidPrice               = errors.New("price must be a positive number")
	ErrInvalidDownPaymentFraction = errors.New("down payment fraction must be between 0 and 1")
	ErrInvalidCorrectionRate      = errors.New("correction rate must be a non-negative number")
	ErrInvalidStartDate           = errors.New("start date must use the YYYY-MM layout")
	ErrUnsupportedSystem          = errors.New("amortization system not supported by this product")
)

// ValidationError reports which field of a FinancingConfig was rejected.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, value interface{}, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}
