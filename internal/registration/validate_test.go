package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDraft() Draft {
	return Draft{
		FullName:         "Jane Doe",
		Email:            "jane@x.com",
		ShootCategory:    CategoryIndividual,
		AdditionalEmails: []string{""},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *Draft)
		expected ValidationErrors
	}{
		{
			name:     "valid draft",
			mutate:   func(d *Draft) {},
			expected: ValidationErrors{},
		},
		{
			name:     "blank full name",
			mutate:   func(d *Draft) { d.FullName = "   " },
			expected: ValidationErrors{FieldFullName: "Full name is required"},
		},
		{
			name:     "missing email",
			mutate:   func(d *Draft) { d.Email = " \t" },
			expected: ValidationErrors{FieldEmail: "Email is required"},
		},
		{
			name:     "malformed email",
			mutate:   func(d *Draft) { d.Email = "not-an-email" },
			expected: ValidationErrors{FieldEmail: "Email is invalid"},
		},
		{
			name:     "unset category",
			mutate:   func(d *Draft) { d.ShootCategory = CategoryUnset },
			expected: ValidationErrors{FieldShootCategory: "Please select a shoot category"},
		},
		{
			name:     "bad additional email keeps its index",
			mutate:   func(d *Draft) { d.AdditionalEmails = []string{"ok@x.com", "", "nope"} },
			expected: ValidationErrors{"additionalEmail2": "Email is invalid"},
		},
		{
			name:     "empty contact list",
			mutate:   func(d *Draft) { d.AdditionalEmails = nil },
			expected: ValidationErrors{},
		},
		{
			name: "everything wrong at once",
			mutate: func(d *Draft) {
				*d = Draft{Email: "a@b", AdditionalEmails: []string{"x@y"}}
			},
			expected: ValidationErrors{
				FieldFullName:      "Full name is required",
				FieldEmail:         "Email is invalid",
				FieldShootCategory: "Please select a shoot category",
				"additionalEmail0": "Email is invalid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			assert.Equal(t, tt.expected, Validate(d))
		})
	}
}

func TestIsEmail(t *testing.T) {
	for _, s := range []string{"jane@x.com", "a@b.c", "first.last@sub.domain.org", "x+tag@y.co"} {
		assert.True(t, IsEmail(s), s)
	}
	for _, s := range []string{"", "not-an-email", "a@b", "@.", "a b@c d.e", "jane.x.com"} {
		assert.False(t, IsEmail(s), s)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Errors: ValidationErrors{FieldEmail: "Email is invalid", FieldFullName: "Full name is required"}}
	assert.Equal(t, "registration invalid: email, fullName", err.Error())
}
