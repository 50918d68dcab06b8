package loginsvc

import (
	"strings"
	"unicode/utf8"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
)

// Field names a sign-in form field.
type Field string

const (
	FieldIdentifier Field = "identifier"
	FieldSecret     Field = "secret"
)

// Rule is a single predicate with the message shown when it fails.
type Rule struct {
	Check   func(value string) bool
	Message string
}

// Required fails on the empty string.
func Required(message string) Rule {
	return Rule{
		Check:   func(value string) bool { return value != "" },
		Message: message,
	}
}

// MinLength fails when value has fewer than n characters.
func MinLength(n int, message string) Rule {
	return Rule{
		Check:   func(value string) bool { return utf8.RuneCountInString(value) >= n },
		Message: message,
	}
}

// FieldRules is the ordered rule list of one field.
type FieldRules struct {
	Field Field
	Rules []Rule
}

// Schema is an immutable, ordered rule table. For every field the first
// violated rule determines the reported message.
type Schema struct {
	fields []FieldRules
}

// NewSchema builds a Schema; the field order is kept for reporting.
func NewSchema(fields ...FieldRules) Schema {
	copied := make([]FieldRules, len(fields))

	for i, f := range fields {
		copied[i] = FieldRules{Field: f.Field, Rules: append([]Rule(nil), f.Rules...)}
	}

	return Schema{fields: copied}
}

// LoginSchema returns the sign-in schema: identifier required with at least
// 1 character, secret required with at least 6.
func LoginSchema() Schema {
	return NewSchema(
		FieldRules{Field: FieldIdentifier, Rules: []Rule{
			Required("Required"),
			MinLength(1, "min 1 chars"),
		}},
		FieldRules{Field: FieldSecret, Rules: []Rule{
			Required("Required"),
			MinLength(6, "Min 6 chars"),
		}},
	)
}

// Fields returns the field names in schema order.
func (s Schema) Fields() []Field {
	fields := make([]Field, len(s.fields))
	for i, f := range s.fields {
		fields[i] = f.Field
	}

	return fields
}

// Has reports whether field is part of the schema.
func (s Schema) Has(field Field) bool {
	for _, f := range s.fields {
		if f.Field == field {
			return true
		}
	}

	return false
}

// Validate evaluates values against the schema. Missing values are empty.
func (s Schema) Validate(values map[Field]string) ValidationErrors {
	var errs ValidationErrors

	for _, f := range s.fields {
		for _, rule := range f.Rules {
			if !rule.Check(values[f.Field]) {
				errs = append(errs, FieldError{Field: f.Field, Message: rule.Message})

				break
			}
		}
	}

	return errs
}

// FieldError is the violation reported for a single field.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists field violations in schema order.
type ValidationErrors []FieldError

// Error implements error.
func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = string(fe.Field) + ": " + fe.Message
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// Is matches domain.ErrValidation.
func (e ValidationErrors) Is(target error) bool {
	return target == domain.ErrValidation
}

// Get returns the message for field.
func (e ValidationErrors) Get(field Field) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}

	return "", false
}
