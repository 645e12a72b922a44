package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/config"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/models"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.DatabasePath)
}

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migrate
	if err := db.AutoMigrate(&models.Submission{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

// SubmissionLog appends successful registrations to the local database as a
// manual recovery aid.
type SubmissionLog struct {
	db *gorm.DB
}

func NewSubmissionLog(db *gorm.DB) *SubmissionLog {
	return &SubmissionLog{db: db}
}

func (l *SubmissionLog) Record(ctx context.Context, s registration.Submission) error {
	row := models.Submission{
		SubmissionFields: models.SubmissionFields{
			SubmittedAt:        s.SubmittedAt,
			FullName:           s.FullName,
			Email:              s.Email,
			ShootCategory:      string(s.ShootCategory),
			PhotoCode:          s.PhotoCode,
			AdditionalEmails:   strings.Join(s.AdditionalEmails, ", "),
			PhoneNumber:        s.PhoneNumber,
			Notes:              s.Notes,
			SocialMediaConsent: s.SocialMediaConsent,
		},
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record submission %s: %w", s.PhotoCode, err)
	}
	return nil
}
