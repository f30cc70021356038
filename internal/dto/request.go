package dto

import "time"

type CreateExperienceRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	EventType   string    `json:"event_type"`
	LocationURL string    `json:"location_url"`
	DurationMin int       `json:"duration_min"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	DateTime    time.Time `json:"date_time"`
}

type CreateReservationRequest struct {
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	UserPhone     string `json:"user_phone"`
	Seats         int    `json:"seats"`
	PaymentMethod string `json:"payment_method"`
}

type EditCapacityRequest struct {
	Capacity int `json:"capacity"`
}

type BeginDeletionRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

type SubmitRatingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}
