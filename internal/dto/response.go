package dto

import (
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
)

type ExperienceResponse struct {
	ID             uint                    `json:"id"`
	OwnerID        string                  `json:"owner_id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	City           string                  `json:"city"`
	EventType      string                  `json:"event_type"`
	LocationURL    string                  `json:"location_url"`
	DurationMin    int                     `json:"duration_min"`
	Price          float64                 `json:"price"`
	Capacity       int                     `json:"capacity"`
	ReservedSeats  int                     `json:"reserved_seats"`
	SeatsAvailable int                     `json:"seats_available"`
	DateTime       time.Time               `json:"date_time"`
	Status         models.ExperienceStatus `json:"status"`
}

type ReservationResponse struct {
	ID            uint                     `json:"id"`
	ExperienceID  uint                     `json:"experience_id"`
	UserID        string                   `json:"user_id"`
	UserName      string                   `json:"user_name"`
	UserEmail     string                   `json:"user_email"`
	Seats         int                      `json:"seats"`
	PaymentMethod string                   `json:"payment_method"`
	TotalPrice    float64                  `json:"total_price"`
	Status        models.ReservationStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

type RatingResponse struct {
	ID            uint      `json:"id"`
	ReservationID uint      `json:"reservation_id"`
	ExperienceID  uint      `json:"experience_id"`
	Score         int       `json:"score"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChallengeResponse struct {
	ID        uint                    `json:"id"`
	Step      models.VerificationStep `json:"step"`
	ExpiresAt time.Time               `json:"expires_at"`
}

type CapacityResponse struct {
	ID       uint                    `json:"id"`
	Capacity int                     `json:"capacity"`
	Status   models.ExperienceStatus `json:"status"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToExperienceResponse(e *models.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:             e.ID,
		OwnerID:        e.OwnerID,
		Name:           e.Name,
		Description:    e.Description,
		City:           e.City,
		EventType:      e.EventType,
		LocationURL:    e.LocationURL,
		DurationMin:    e.DurationMin,
		Price:          e.Price,
		Capacity:       e.Capacity,
		ReservedSeats:  e.ReservedSeats,
		SeatsAvailable: e.AvailableSeats(),
		DateTime:       e.DateTime,
		Status:         e.Status,
	}
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		ExperienceID:  r.ExperienceID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		UserEmail:     r.UserEmail,
		Seats:         r.Seats,
		PaymentMethod: r.PaymentMethod,
		TotalPrice:    r.TotalPrice,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

func ToRatingResponse(r *models.Rating) RatingResponse {
	return RatingResponse{
		ID:            r.ID,
		ReservationID: r.ReservationID,
		ExperienceID:  r.ExperienceID,
		Score:         r.Score,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

func ToChallengeResponse(c *models.VerificationChallenge) ChallengeResponse {
	return ChallengeResponse{
		ID:        c.ID,
		Step:      c.Step,
		ExpiresAt: c.ExpiresAt,
	}
}
