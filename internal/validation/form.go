// Package validation checks product form submissions before they reach the
// backend.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"productdesk/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// messages maps field and failed tag to the text shown next to the input.
var messages = map[string]map[string]string{
	"name": {
		"required": "Product name is required",
	},
	"category": {
		"required": "Category is required",
		"category": "Category is required",
	},
	"description": {
		"required": "Description is required",
		"min":      "Description should be at least 10 characters",
	},
	"price": {
		"gt": "Price must be greater than 0",
	},
	"stockQuantity": {
		"gte": "Stock cannot be negative",
	},
}

// Errors maps a form field to the message describing why it was rejected.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator validates ProductFormData.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the product rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Form returns nil when form is acceptable, and Errors otherwise.
func (v *Validator) Form(form models.ProductFormData) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate product form: %w", err)
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
		out[fe.Field()] = msg
	}
	return out
}
