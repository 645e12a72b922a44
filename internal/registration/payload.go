package registration

import (
	"strings"
	"time"
)

// TimestampLayout matches the UTC ISO-8601 form used by browsers.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	KeyFullName           = "Full Name"
	KeyEmail              = "Email"
	KeyShootCategory      = "Shoot Category"
	KeyPhotoCode          = "Photo Code"
	KeyAdditionalEmails   = "Additional Emails"
	KeyPhoneNumber        = "Phone Number"
	KeyNotes              = "Notes"
	KeySocialMediaConsent = "Social Media Consent"
	KeySubmissionDate     = "Submission Date"
)

type Field struct {
	Key   string
	Value string
}

// Payload is the ordered key/value body posted to the spreadsheet.
type Payload []Field

func (p Payload) Get(key string) (string, bool) {
	for _, f := range p {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func BuildPayload(s Submission) Payload {
	consent := "No"
	if s.SocialMediaConsent {
		consent = "Yes"
	}
	return Payload{
		{KeyFullName, s.FullName},
		{KeyEmail, s.Email},
		{KeyShootCategory, s.ShootCategory.Label()},
		{KeyPhotoCode, s.PhotoCode},
		{KeyAdditionalEmails, strings.Join(s.AdditionalEmails, ", ")},
		{KeyPhoneNumber, s.PhoneNumber},
		{KeyNotes, s.Notes},
		{KeySocialMediaConsent, consent},
		{KeySubmissionDate, s.SubmittedAt.UTC().Format(TimestampLayout)},
	}
}

// Submission is the immutable record of one successful registration. It backs
// the summary view, the outbound payload and the local log.
type Submission struct {
	SubmittedAt        time.Time
	FullName           string
	Email              string
	ShootCategory      Category
	PhotoCode          string
	AdditionalEmails   []string
	PhoneNumber        string
	Notes              string
	SocialMediaConsent bool
}

func newSubmission(d Draft, code string, at time.Time) Submission {
	return Submission{
		SubmittedAt:        at.UTC(),
		FullName:           d.FullName,
		Email:              d.Email,
		ShootCategory:      d.ShootCategory,
		PhotoCode:          code,
		AdditionalEmails:   d.Contacts(),
		PhoneNumber:        d.PhoneNumber,
		Notes:              d.Notes,
		SocialMediaConsent: d.SocialMediaConsent,
	}
}
