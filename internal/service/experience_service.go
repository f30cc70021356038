package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidCapacity   = errors.New("capacity cannot be below reserved seats")
	ErrForbidden         = errors.New("experience belongs to another owner")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type ExperienceService interface {
	CreateExperience(ctx context.Context, exp *models.Experience) error
	GetExperience(ctx context.Context, id uint) (*models.Experience, error)
	ListExperiences(ctx context.Context, filter repository.ExperienceFilter) ([]models.Experience, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Experience, error)
	EditCapacity(ctx context.Context, experienceID uint, ownerID string, newCapacity int) (models.ExperienceStatus, error)
	Activate(ctx context.Context, experienceID uint, ownerID string) error
}

type experienceService struct {
	expRepo repository.ExperienceRepository
	ledger  repository.CapacityLedger
}

func NewExperienceService(expRepo repository.ExperienceRepository, ledger repository.CapacityLedger) ExperienceService {
	return &experienceService{expRepo: expRepo, ledger: ledger}
}

func (s *experienceService) CreateExperience(ctx context.Context, exp *models.Experience) error {
	if exp.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidRequest)
	}
	if exp.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if !exp.DateTime.After(time.Now()) {
		return fmt.Errorf("%w: date must be in the future", ErrInvalidRequest)
	}

	exp.ReservedSeats = 0
	exp.Status = models.ExperienceUpcoming
	if err := s.expRepo.Create(ctx, exp); err != nil {
		return fmt.Errorf("create experience: %w", err)
	}
	return nil
}

func (s *experienceService) GetExperience(ctx context.Context, id uint) (*models.Experience, error) {
	exp, err := s.expRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrExperienceNotFound
	}
	return exp, nil
}

func (s *experienceService) ListExperiences(ctx context.Context, filter repository.ExperienceFilter) ([]models.Experience, error) {
	return s.expRepo.FindAll(ctx, filter)
}

func (s *experienceService) ListByOwner(ctx context.Context, ownerID string) ([]models.Experience, error) {
	return s.expRepo.FindByOwner(ctx, ownerID)
}

// EditCapacity changes capacity under a row lock so the check against
// reserved seats cannot race with concurrent reservations, then recomputes
// the status: raising capacity on a sold_out experience reopens it.
func (s *experienceService) EditCapacity(ctx context.Context, experienceID uint, ownerID string, newCapacity int) (models.ExperienceStatus, error) {
	var status models.ExperienceStatus

	err := s.expRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exp, err := s.expRepo.FindByIDForUpdate(ctx, tx, experienceID)
		if err != nil {
			return ErrExperienceNotFound
		}
		if exp.OwnerID != ownerID {
			return ErrForbidden
		}
		if exp.Status == models.ExperienceCancelled {
			return ErrInvalidTransition
		}
		if newCapacity <= 0 || newCapacity < exp.ReservedSeats {
			return ErrInvalidCapacity
		}

		if err := s.expRepo.UpdateCapacity(ctx, tx, experienceID, newCapacity); err != nil {
			return err
		}
		if err := s.ledger.RecomputeStatus(ctx, tx, experienceID); err != nil {
			return err
		}

		updated, err := s.expRepo.FindByIDForUpdate(ctx, tx, experienceID)
		if err != nil {
			return err
		}
		status = updated.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// Activate is the one manual transition: upcoming -> active, only while the
// date is still in the future. sold_out and cancelled never activate.
func (s *experienceService) Activate(ctx context.Context, experienceID uint, ownerID string) error {
	return s.expRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exp, err := s.expRepo.FindByIDForUpdate(ctx, tx, experienceID)
		if err != nil {
			return ErrExperienceNotFound
		}
		if exp.OwnerID != ownerID {
			return ErrForbidden
		}
		if exp.Status != models.ExperienceUpcoming || !exp.DateTime.After(time.Now()) {
			return ErrInvalidTransition
		}
		return s.expRepo.UpdateStatus(ctx, tx, experienceID, models.ExperienceActive)
	})
}
