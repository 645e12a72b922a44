package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionFields struct {
	SubmittedAt        time.Time `json:"submitted_at"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	ShootCategory      string    `json:"shoot_category"`
	PhotoCode          string    `json:"photo_code" gorm:"index"`
	AdditionalEmails   string    `json:"additional_emails"`
	PhoneNumber        string    `json:"phone_number"`
	Notes              string    `json:"notes"`
	SocialMediaConsent bool      `json:"social_media_consent"`
}

// Submission is one row of the append-only local log. Rows are only ever
// created; the service never reads them back.
type Submission struct {
	gorm.Model
	SubmissionFields `gorm:"embedded"`
}
