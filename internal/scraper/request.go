package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request describes a single scrape invocation.
type Request struct {
	URL       string `validate:"required,urlscheme"`
	Download  bool
	Debug     bool
	OutputDir string `validate:"required"`
}

func validateRequest(req Request) error {
	v := validator.New()

	if err := v.RegisterValidation("urlscheme", validateURLScheme); err != nil {
		return fmt.Errorf("register urlscheme validation: %w", err)
	}

	if err := v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].StructField() {
			case "URL":
				return fmt.Errorf("%w: URL must start with http:// or https://", ErrInvalidRequest)
			case "OutputDir":
				return fmt.Errorf("%w: output directory must not be empty", ErrInvalidRequest)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

func validateURLScheme(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
