package loginsvc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
)

// ErrUnknownField is returned for a field that is not part of the schema.
var ErrUnknownField = errors.New("unknown field")

// Form holds field values and touch state. A field's error is visible only
// when the field is touched and invalid.
type Form struct {
	schema Schema

	m       sync.Mutex
	values  map[Field]string
	touched map[Field]bool
}

// NewForm creates an empty, untouched form for schema.
func NewForm(schema Schema) *Form {
	return &Form{
		schema:  schema,
		values:  make(map[Field]string),
		touched: make(map[Field]bool),
	}
}

// SetValue updates a field value.
func (f *Form) SetValue(field Field, value string) error {
	if !f.schema.Has(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	f.m.Lock()
	defer f.m.Unlock()

	f.values[field] = value

	return nil
}

// Blur marks a field as touched.
func (f *Form) Blur(field Field) error {
	if !f.schema.Has(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	f.m.Lock()
	defer f.m.Unlock()

	f.touched[field] = true

	return nil
}

// TouchAll marks every field as touched.
func (f *Form) TouchAll() {
	f.m.Lock()
	defer f.m.Unlock()

	for _, field := range f.schema.Fields() {
		f.touched[field] = true
	}
}

// Touched reports whether the user has interacted with field.
func (f *Form) Touched(field Field) bool {
	f.m.Lock()
	defer f.m.Unlock()

	return f.touched[field]
}

// Errors returns every current violation, touched or not.
func (f *Form) Errors() ValidationErrors {
	f.m.Lock()
	defer f.m.Unlock()

	return f.schema.Validate(f.values)
}

// VisibleErrors returns the violations of touched fields.
func (f *Form) VisibleErrors() ValidationErrors {
	f.m.Lock()
	defer f.m.Unlock()

	var visible ValidationErrors

	for _, fe := range f.schema.Validate(f.values) {
		if f.touched[fe.Field] {
			visible = append(visible, fe)
		}
	}

	return visible
}

// Credentials returns the current values as credentials.
func (f *Form) Credentials() domain.Credentials {
	f.m.Lock()
	defer f.m.Unlock()

	return domain.Credentials{
		Identifier: f.values[FieldIdentifier],
		Secret:     f.values[FieldSecret],
	}
}
