package models

import "time"

type VerificationStep string

const (
	// StepAwaitingEmail is transient and never stored: a failed email check
	// leaves no record, a passed one creates the challenge already at
	// StepAwaitingCode.
	StepAwaitingEmail VerificationStep = "awaiting_email"
	StepAwaitingCode  VerificationStep = "awaiting_code"
	StepConfirmed     VerificationStep = "confirmed"
)

// VerificationChallenge guards experience deletion. At most one active
// challenge exists per (owner, experience); starting over replaces it.
type VerificationChallenge struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	OwnerID            string           `gorm:"not null;uniqueIndex:idx_challenge_owner_exp" json:"owner_id"`
	TargetExperienceID uint             `gorm:"not null;uniqueIndex:idx_challenge_owner_exp" json:"target_experience_id"`
	Code               string           `gorm:"not null" json:"-"`
	Step               VerificationStep `gorm:"type:varchar(20);not null" json:"step"`
	Attempts           int              `gorm:"not null;default:0" json:"-"`
	ExpiresAt          time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt          time.Time        `json:"created_at"`
}
