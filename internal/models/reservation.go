package models

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ExperienceID  uint              `gorm:"not null;index" json:"experience_id"`
	UserID        string            `gorm:"not null;index" json:"user_id"`
	UserName      string            `gorm:"not null" json:"user_name"`
	UserEmail     string            `gorm:"not null" json:"user_email"`
	UserPhone     string            `json:"user_phone"`
	Seats         int               `gorm:"not null" json:"seats"`
	PaymentMethod string            `gorm:"not null" json:"payment_method"`
	TotalPrice    float64           `json:"total_price"`
	Status        ReservationStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Experience *Experience `gorm:"foreignKey:ExperienceID" json:"experience,omitempty"`
}
