package models

import "time"

type Rating struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"not null;uniqueIndex" json:"reservation_id"`
	ExperienceID  uint      `gorm:"not null;index" json:"experience_id"`
	UserID        string    `gorm:"not null" json:"user_id"`
	Score         int       `gorm:"not null" json:"score"`
	Comment       string    `gorm:"not null" json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}
