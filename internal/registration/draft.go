package registration

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmailIndex = errors.New("additional email index out of range")

// Draft is the user-editable registration record before submission.
type Draft struct {
	FullName           string
	Email              string
	ShootCategory      Category
	AdditionalEmails   []string
	PhoneNumber        string
	Notes              string
	SocialMediaConsent bool
}

// NewDraft returns an empty draft with a single empty contact slot.
func NewDraft() Draft {
	return Draft{AdditionalEmails: []string{""}}
}

func (d Draft) clone() Draft {
	d.AdditionalEmails = append([]string(nil), d.AdditionalEmails...)
	return d
}

func (d *Draft) AddEmail() {
	d.AdditionalEmails = append(d.AdditionalEmails, "")
}

func (d *Draft) UpdateEmail(i int, value string) error {
	if i < 0 || i >= len(d.AdditionalEmails) {
		return fmt.Errorf("%w: %d", ErrEmailIndex, i)
	}
	d.AdditionalEmails[i] = value
	return nil
}

// RemoveEmail deletes slot i. Removing the last remaining slot is a no-op.
func (d *Draft) RemoveEmail(i int) error {
	if i < 0 || i >= len(d.AdditionalEmails) {
		return fmt.Errorf("%w: %d", ErrEmailIndex, i)
	}
	if len(d.AdditionalEmails) <= 1 {
		return nil
	}
	d.AdditionalEmails = append(d.AdditionalEmails[:i], d.AdditionalEmails[i+1:]...)
	return nil
}

// Contacts returns the non-empty additional emails in display order.
func (d Draft) Contacts() []string {
	var out []string
	for _, e := range d.AdditionalEmails {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}
