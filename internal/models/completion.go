package models

import (
	"time"

	"gorm.io/gorm"
)

// CompletionRecord is the durable summary written once per finished
// feedback submission
type CompletionRecord struct {
	gorm.Model
	UserPhone       string    `json:"user_phone" gorm:"index"`
	Name            string    `json:"name"`
	Feedback        string    `json:"feedback"`
	ProfileImageRef string    `json:"profile_image_ref"`
	DurationMinutes int       `json:"duration_minutes"`
	CompletedAt     time.Time `json:"completed_at"`
}
