package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotEligible     = errors.New("reservation is not eligible for rating")
	ErrDuplicateRating = errors.New("reservation already has a rating")
)

const minCommentLen = 10

type RatingService interface {
	CanRate(ctx context.Context, reservationID uint) (bool, error)
	SubmitRating(ctx context.Context, reservationID uint, userID string, score int, comment string) (*models.Rating, error)
	ListByExperience(ctx context.Context, experienceID uint) ([]models.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	resRepo    repository.ReservationRepository
	expRepo    repository.ExperienceRepository
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	resRepo repository.ReservationRepository,
	expRepo repository.ExperienceRepository,
) RatingService {
	return &ratingService{ratingRepo: ratingRepo, resRepo: resRepo, expRepo: expRepo}
}

// CanRate reports whether a reservation may receive a rating: it must be
// confirmed, the experience must be over, and no rating may exist yet.
func (s *ratingService) CanRate(ctx context.Context, reservationID uint) (bool, error) {
	reservation, err := s.resRepo.FindByID(ctx, reservationID)
	if err != nil {
		return false, ErrReservationNotFound
	}
	if reservation.Status != models.ReservationConfirmed {
		return false, nil
	}

	exp, err := s.expRepo.FindByID(ctx, reservation.ExperienceID)
	if err != nil {
		return false, err
	}
	if !exp.DateTime.Before(time.Now()) {
		return false, nil
	}

	_, err = s.ratingRepo.FindByReservationID(ctx, reservationID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, nil
}

// SubmitRating re-checks eligibility server-side; the unique index on
// reservation_id is what makes concurrent duplicates impossible, the
// eligibility check only produces a friendlier error for the common case.
func (s *ratingService) SubmitRating(ctx context.Context, reservationID uint, userID string, score int, comment string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", ErrInvalidRequest)
	}
	if len(strings.TrimSpace(comment)) < minCommentLen {
		return nil, fmt.Errorf("%w: comment must be at least %d characters", ErrInvalidRequest, minCommentLen)
	}

	reservation, err := s.resRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, ErrReservationNotFound
	}
	if reservation.UserID != userID {
		return nil, ErrForbidden
	}

	eligible, err := s.CanRate(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		if _, err := s.ratingRepo.FindByReservationID(ctx, reservationID); err == nil {
			return nil, ErrDuplicateRating
		}
		return nil, ErrNotEligible
	}

	rating := &models.Rating{
		ReservationID: reservationID,
		ExperienceID:  reservation.ExperienceID,
		UserID:        userID,
		Score:         score,
		Comment:       strings.TrimSpace(comment),
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRating
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

func (s *ratingService) ListByExperience(ctx context.Context, experienceID uint) ([]models.Rating, error) {
	return s.ratingRepo.FindByExperience(ctx, experienceID)
}
