package vehicle

import (
	"errors"
	"fmt"
)

var (
	// Field errors
	ErrUnknownField = errors.New("unknown form field")

	// Validation errors
	ErrMakeRequired     = errors.New("make is required")
	ErrModelRequired    = errors.New("model is required")
	ErrYearTooOld       = errors.New("year must be after 1900")
	ErrNegativeOdometer = errors.New("reported km must not be negative")
	ErrPowerRequired    = errors.New("horsepower must be greater than zero")
	ErrPriceRequired    = errors.New("price must be greater than zero")
)

// UnknownFieldError is returned when a field identifier is not part of the form
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownField, e.Name)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// ValidationError ties a violated constraint to the field that broke it
type ValidationError struct {
	Field   Field
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }
