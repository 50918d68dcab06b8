package loginsvc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/loginsvc"
)

func TestLoginSchema_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		identifier string
		secret     string
		want       loginsvc.ValidationErrors
	}{
		{
			name:       "valid",
			identifier: "bob",
			secret:     "password1",
		},
		{
			name:   "both empty reports required in field order",
			secret: "",
			want: loginsvc.ValidationErrors{
				{Field: loginsvc.FieldIdentifier, Message: "Required"},
				{Field: loginsvc.FieldSecret, Message: "Required"},
			},
		},
		{
			name:       "short secret",
			identifier: "bob",
			secret:     "abc",
			want: loginsvc.ValidationErrors{
				{Field: loginsvc.FieldSecret, Message: "Min 6 chars"},
			},
		},
		{
			name:       "secret length counts characters",
			identifier: "bob",
			secret:     "pässwö",
		},
		{
			name:       "secret of exactly six",
			identifier: "b",
			secret:     "abcdef",
		},
	}

	schema := loginsvc.LoginSchema()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := schema.Validate(map[loginsvc.Field]string{
				loginsvc.FieldIdentifier: tt.identifier,
				loginsvc.FieldSecret:     tt.secret,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_FirstViolatedRuleWins(t *testing.T) {
	t.Parallel()

	schema := loginsvc.NewSchema(loginsvc.FieldRules{
		Field: "code",
		Rules: []loginsvc.Rule{
			loginsvc.MinLength(4, "too short"),
			loginsvc.Required("missing"),
		},
	})

	errs := schema.Validate(nil)
	assert.Equal(t, loginsvc.ValidationErrors{{Field: "code", Message: "too short"}}, errs)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := loginsvc.ValidationErrors{{Field: loginsvc.FieldSecret, Message: "Min 6 chars"}}

	assert.True(t, errors.Is(errs, domain.ErrValidation))
	assert.Equal(t, "validation failed: secret: Min 6 chars", errs.Error())

	msg, ok := errs.Get(loginsvc.FieldSecret)
	assert.True(t, ok)
	assert.Equal(t, "Min 6 chars", msg)

	_, ok = errs.Get(loginsvc.FieldIdentifier)
	assert.False(t, ok)
}

func TestForm_VisibleErrorsRequireTouch(t *testing.T) {
	t.Parallel()

	form := loginsvc.NewForm(loginsvc.LoginSchema())

	assert.Len(t, form.Errors(), 2)
	assert.Empty(t, form.VisibleErrors(), "untouched fields show no error")

	assert.NoError(t, form.Blur(loginsvc.FieldIdentifier))
	assert.Equal(t, loginsvc.ValidationErrors{
		{Field: loginsvc.FieldIdentifier, Message: "Required"},
	}, form.VisibleErrors())

	assert.NoError(t, form.SetValue(loginsvc.FieldIdentifier, "bob"))
	assert.Empty(t, form.VisibleErrors(), "error clears as soon as the field is valid")

	assert.ErrorIs(t, form.SetValue("email", "x"), loginsvc.ErrUnknownField)
	assert.ErrorIs(t, form.Blur("email"), loginsvc.ErrUnknownField)
}
