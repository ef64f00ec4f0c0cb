package vehicle

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// fieldErrors maps each constrained field to the sentinel it reports
var fieldErrors = map[Field]error{
	FieldMake:       ErrMakeRequired,
	FieldModel:      ErrModelRequired,
	FieldYear:       ErrYearTooOld,
	FieldReportedKm: ErrNegativeOdometer,
	FieldHorsepower: ErrPowerRequired,
	FieldPrice:      ErrPriceRequired,
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by wire name so errors line up with Field
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Problems returns every constraint the query violates, in field order
func Problems(q Query) []*ValidationError {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError cannot happen for a struct value
		return []*ValidationError{{Wrapped: err}}
	}

	problems := make([]*ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := Field(fe.Field())
		problems = append(problems, &ValidationError{
			Field:   field,
			Value:   q.Get(field),
			Wrapped: fieldErrors[field],
		})
	}
	return problems
}

// Validate returns nil when the query can be submitted, otherwise the joined
// validation errors
func Validate(q Query) error {
	problems := Problems(q)
	if len(problems) == 0 {
		return nil
	}

	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// Submittable reports whether the form may be sent to the scoring service
func Submittable(q Query) bool {
	return Validate(q) == nil
}
