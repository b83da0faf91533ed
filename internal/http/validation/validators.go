// Package validation checks console form input before anything is sent to the backend.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
)

// Validator checks one string value and returns a user-facing message, or "" when valid.
type Validator func(v string) string

// Required rejects blank values and values longer than maxLen runes.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Optional allows blank values but still caps the length.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v != "" && utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// OneOf requires one of options, ignoring case. Blank values pass.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		for _, opt := range options {
			if strings.EqualFold(v, opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s.", fieldName, strings.Join(options, ", "))
	}
}

// Amount requires a positive money amount with at most two decimals, no larger than ceiling.
// A zero ceiling means no upper bound. Blank values pass; pair with Required.
func Amount(fieldName string, ceiling model.Money) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		m, err := model.ParseMoney(v)
		if err != nil {
			return "Enter " + strings.ToLower(fieldName) + " as pounds and pence, e.g. 120.50."
		}
		if m <= 0 {
			return fieldName + " must be greater than zero."
		}
		if ceiling > 0 && m > ceiling {
			return fmt.Sprintf("%s cannot exceed %s.", fieldName, ceiling)
		}
		return ""
	}
}

// FieldValidator collects the first failure per field.
type FieldValidator struct {
	errors map[string]string
	order  []string
}

// New creates an empty FieldValidator.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate runs validators against value, stopping at the first failure for the field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	if _, seen := fv.errors[field]; seen {
		return fv
	}
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			fv.order = append(fv.order, field)
			break
		}
	}
	return fv
}

// Valid reports whether every field passed.
func (fv *FieldValidator) Valid() bool { return len(fv.errors) == 0 }

// Errors returns failures keyed by field.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Fields returns the failing field names, sorted.
func (fv *FieldValidator) Fields() []string {
	out := make([]string, 0, len(fv.errors))
	for f := range fv.errors {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Err returns the first failure as a validation AppError carrying its field, or nil.
func (fv *FieldValidator) Err() error {
	if len(fv.order) == 0 {
		return nil
	}
	field := fv.order[0]
	return apperrors.ValidationField(field, fv.errors[field])
}
