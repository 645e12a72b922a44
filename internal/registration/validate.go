package registration

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	FieldFullName      = "fullName"
	FieldEmail         = "email"
	FieldShootCategory = "shootCategory"
)

const (
	msgFullNameRequired = "Full name is required"
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Email is invalid"
	msgCategoryRequired = "Please select a shoot category"
)

// emailShape is a minimal shape check, not an RFC 5322 parser.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationErrors maps a field identifier to a user-facing message.
type ValidationErrors map[string]string

func (ve ValidationErrors) Fields() []string {
	keys := make([]string, 0, len(ve))
	for k := range ve {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (ve ValidationErrors) clone() ValidationErrors {
	if ve == nil {
		return nil
	}
	out := make(ValidationErrors, len(ve))
	for k, v := range ve {
		out[k] = v
	}
	return out
}

// ValidationError is returned by Form.Submit when the draft is not valid.
type ValidationError struct {
	Errors ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("registration invalid: %s", strings.Join(e.Errors.Fields(), ", "))
}

func AdditionalEmailField(i int) string {
	return fmt.Sprintf("additionalEmail%d", i)
}

func IsEmail(s string) bool {
	return emailShape.MatchString(s)
}

// Validate checks d from scratch. An empty result means the draft is valid.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(d.FullName) == "" {
		errs[FieldFullName] = msgFullNameRequired
	}

	if strings.TrimSpace(d.Email) == "" {
		errs[FieldEmail] = msgEmailRequired
	} else if !IsEmail(d.Email) {
		errs[FieldEmail] = msgEmailInvalid
	}

	if d.ShootCategory == CategoryUnset {
		errs[FieldShootCategory] = msgCategoryRequired
	}

	// Empty contact slots are optional.
	for i, e := range d.AdditionalEmails {
		if e != "" && !IsEmail(e) {
			errs[AdditionalEmailField(i)] = msgEmailInvalid
		}
	}

	return errs
}
