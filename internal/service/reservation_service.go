package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/notifier"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrExperienceNotFound  = errors.New("experience not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSoldOut             = errors.New("experience is sold out")
	ErrBookingClosed       = errors.New("experience is not open for booking")
	ErrInvalidRequest      = errors.New("invalid reservation request")
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type CreateReservationInput struct {
	ExperienceID  uint
	UserID        string
	UserName      string
	UserEmail     string
	UserPhone     string
	Seats         int
	PaymentMethod string
}

type ReservationService interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error)
	CancelReservation(ctx context.Context, reservationID uint) error
	BulkCancelForExperience(ctx context.Context, tx *gorm.DB, experienceID uint) ([]models.Reservation, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	ListByExperience(ctx context.Context, experienceID uint, status *models.ReservationStatus) ([]models.Reservation, error)
}

type reservationService struct {
	resRepo  repository.ReservationRepository
	expRepo  repository.ExperienceRepository
	ledger   repository.CapacityLedger
	notifier notifier.Notifier
}

func NewReservationService(
	resRepo repository.ReservationRepository,
	expRepo repository.ExperienceRepository,
	ledger repository.CapacityLedger,
	n notifier.Notifier,
) ReservationService {
	return &reservationService{
		resRepo:  resRepo,
		expRepo:  expRepo,
		ledger:   ledger,
		notifier: n,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if err := validateReservationInput(in); err != nil {
		return nil, err
	}

	// Pre-checks outside the transaction; the ledger re-checks capacity
	// atomically so a stale read here cannot oversell.
	exp, err := s.expRepo.FindByID(ctx, in.ExperienceID)
	if err != nil {
		return nil, ErrExperienceNotFound
	}
	if exp.Status == models.ExperienceCancelled || time.Now().After(exp.DateTime) {
		return nil, ErrBookingClosed
	}

	var result *models.Reservation

	err = s.resRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Claim the seats. A conditional update either grants all of
		//    them or changes nothing.
		if err := s.ledger.TryReserve(ctx, tx, in.ExperienceID, in.Seats); err != nil {
			if errors.Is(err, repository.ErrCapacityExceeded) {
				return ErrSoldOut
			}
			return err
		}

		// 2. Persist the reservation in the same transaction, so seats and
		//    record can never diverge.
		reservation := &models.Reservation{
			ExperienceID:  in.ExperienceID,
			UserID:        in.UserID,
			UserName:      in.UserName,
			UserEmail:     in.UserEmail,
			UserPhone:     in.UserPhone,
			Seats:         in.Seats,
			PaymentMethod: in.PaymentMethod,
			TotalPrice:    float64(in.Seats) * exp.Price,
			Status:        models.ReservationConfirmed,
		}
		if err := s.resRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}

		// 3. Derive sold_out from the new seat count.
		if err := s.ledger.RecomputeStatus(ctx, tx, in.ExperienceID); err != nil {
			return err
		}

		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Confirmation email goes through the queue; a broker hiccup must not
	// undo a committed reservation.
	if err := s.notifier.Send(
		in.UserEmail,
		fmt.Sprintf("Reservation confirmed: %s", exp.Name),
		fmt.Sprintf("Your reservation for %d seat(s) on %s is confirmed.", in.Seats, exp.DateTime.Format(time.RFC1123)),
	); err != nil {
		log.Printf("[ReservationService] failed to queue confirmation for reservation %d: %v", result.ID, err)
	}

	return result, nil
}

// CancelReservation is idempotent: cancelling an already-cancelled
// reservation is a no-op, and seats are only released on the first flip.
func (s *reservationService) CancelReservation(ctx context.Context, reservationID uint) error {
	reservation, err := s.resRepo.FindByID(ctx, reservationID)
	if err != nil {
		return ErrReservationNotFound
	}

	return s.resRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flipped, err := s.resRepo.CancelIfConfirmed(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !flipped {
			return nil // already cancelled
		}

		if err := s.ledger.Release(ctx, tx, reservation.ExperienceID, reservation.Seats); err != nil {
			return err
		}
		return s.ledger.RecomputeStatus(ctx, tx, reservation.ExperienceID)
	})
}

// BulkCancelForExperience cancels every confirmed reservation of an
// experience and returns them so the caller can notify the holders. It runs
// inside the caller's transaction; only the deletion cascade uses it.
func (s *reservationService) BulkCancelForExperience(ctx context.Context, tx *gorm.DB, experienceID uint) ([]models.Reservation, error) {
	confirmed, err := s.resRepo.FindConfirmedForUpdate(ctx, tx, experienceID)
	if err != nil {
		return nil, err
	}

	for _, r := range confirmed {
		flipped, err := s.resRepo.CancelIfConfirmed(ctx, tx, r.ID)
		if err != nil {
			return nil, err
		}
		if !flipped {
			continue
		}
		if err := s.ledger.Release(ctx, tx, experienceID, r.Seats); err != nil {
			return nil, err
		}
	}

	return confirmed, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.resRepo.FindByID(ctx, id)
}

func (s *reservationService) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return s.resRepo.FindByUser(ctx, userID)
}

func (s *reservationService) ListByExperience(ctx context.Context, experienceID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	return s.resRepo.FindByExperience(ctx, experienceID, status)
}

func validateReservationInput(in CreateReservationInput) error {
	if in.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", ErrInvalidRequest)
	}
	if in.UserName == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if !emailRx.MatchString(in.UserEmail) {
		return fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	if in.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrInvalidRequest)
	}
	return nil
}
