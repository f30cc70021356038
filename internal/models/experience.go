package models

import "time"

type ExperienceStatus string

const (
	ExperienceUpcoming  ExperienceStatus = "upcoming"
	ExperienceActive    ExperienceStatus = "active"
	ExperienceSoldOut   ExperienceStatus = "sold_out"
	ExperienceCancelled ExperienceStatus = "cancelled"
)

type Experience struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	OwnerID       string           `gorm:"not null;index" json:"owner_id"`
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `json:"description"`
	City          string           `gorm:"index" json:"city"`
	EventType     string           `gorm:"index" json:"event_type"`
	LocationURL   string           `json:"location_url"`
	DurationMin   int              `json:"duration_min"`
	Price         float64          `gorm:"not null" json:"price"`
	Capacity      int              `gorm:"not null" json:"capacity"`
	ReservedSeats int              `gorm:"not null;default:0" json:"reserved_seats"`
	DateTime      time.Time        `gorm:"not null" json:"date_time"`
	Status        ExperienceStatus `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// AvailableSeats is a projection for display; the authoritative check
// lives in the conditional update of the capacity ledger.
func (e *Experience) AvailableSeats() int {
	return e.Capacity - e.ReservedSeats
}
