package models

import (
	"time"
)

// Step identifies the stage of the feedback collection flow a user is in.
type Step int

const (
	// StepName - waiting for the user to send their name
	StepName Step = 1
	// StepFeedback - waiting for the free-text feedback
	StepFeedback Step = 2
	// StepImage - waiting for the profile photo
	StepImage Step = 3
	// StepDone - flow finished (sessions at this step are about to be removed)
	StepDone Step = 4
)

// Valid reports whether the step is one of the three live conversation stages.
func (s Step) Valid() bool {
	return s >= StepName && s <= StepImage
}

// Session stores per-user conversation state for the feedback flow
type Session struct {
	UserPhone       string    `json:"user_phone"`
	Step            Step      `json:"step"`
	Name            string    `json:"name"`
	Feedback        string    `json:"feedback"`
	ProfileImageRef string    `json:"profile_image_ref"`
	CreatedAt       time.Time `json:"created_at"`
	LastActivity    time.Time `json:"last_activity"`
}

// SessionUpdate carries the fields to merge into an existing session.
// Nil fields are left untouched.
type SessionUpdate struct {
	Step            *Step
	Name            *string
	Feedback        *string
	ProfileImageRef *string
}
