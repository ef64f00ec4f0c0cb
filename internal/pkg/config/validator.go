package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			key := fe.Namespace()
			if i := strings.IndexByte(key, '.'); i >= 0 {
				key = key[i+1:]
			}
			return fmt.Errorf("invalid %s: %q fails %s", key, fmt.Sprint(fe.Value()), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if money.GetCurrency(c.Display.Currency) == nil {
		return fmt.Errorf("unknown display currency %q", c.Display.Currency)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("metrics path is required when metrics are enabled")
	}

	return nil
}
