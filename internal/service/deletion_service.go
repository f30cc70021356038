package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/notifier"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChallengeNotFound  = errors.New("verification challenge not found")
	ErrChallengeExpired   = errors.New("verification code expired")
	ErrValidationFailed   = errors.New("email does not match account")
	ErrVerificationFailed = errors.New("verification code does not match")
	ErrTooManyAttempts    = errors.New("too many failed verification attempts")
	ErrInvalidStep        = errors.New("verification step out of order")
	ErrDeletionBlocked    = errors.New("sold out experiences cannot be deleted")
)

const (
	challengeTTL         = 15 * time.Minute
	maxVerifyAttempts    = 5
	deletionEmailSubject = "Verification code - experience deletion"
)

// DeletionService runs the three-step gate in front of the irreversible
// experience delete: confirm the owner's email, confirm the mailed code,
// then execute the cascade. Steps only ever advance in that order.
type DeletionService interface {
	Begin(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error)
	Resend(ctx context.Context, challengeID uint, ownerID, accountEmail string) error
	Verify(ctx context.Context, challengeID uint, ownerID, code string) error
	Confirm(ctx context.Context, challengeID uint, ownerID string) error
}

type deletionService struct {
	expRepo       repository.ExperienceRepository
	challengeRepo repository.ChallengeRepository
	reservations  ReservationService
	notifier      notifier.Notifier
}

func NewDeletionService(
	expRepo repository.ExperienceRepository,
	challengeRepo repository.ChallengeRepository,
	reservations ReservationService,
	n notifier.Notifier,
) DeletionService {
	return &deletionService{
		expRepo:       expRepo,
		challengeRepo: challengeRepo,
		reservations:  reservations,
		notifier:      n,
	}
}

// Begin verifies the supplied email against the owner's account email and,
// on match, creates (or replaces) the active challenge and mails the code.
// A mismatch generates no code and changes nothing.
func (s *deletionService) Begin(ctx context.Context, experienceID uint, ownerID, accountEmail, suppliedEmail string) (*models.VerificationChallenge, error) {
	exp, err := s.expRepo.FindByID(ctx, experienceID)
	if err != nil {
		return nil, ErrExperienceNotFound
	}
	if exp.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if exp.Status == models.ExperienceSoldOut {
		return nil, ErrDeletionBlocked
	}
	if !emailRx.MatchString(suppliedEmail) || !strings.EqualFold(suppliedEmail, accountEmail) {
		return nil, ErrValidationFailed
	}

	ch := &models.VerificationChallenge{
		OwnerID:            ownerID,
		TargetExperienceID: experienceID,
		Code:               generateVerificationCode(),
		Step:               models.StepAwaitingCode,
		Attempts:           0,
		ExpiresAt:          time.Now().Add(challengeTTL),
		CreatedAt:          time.Now(),
	}
	if err := s.challengeRepo.Upsert(ctx, ch); err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}

	s.mailCode(accountEmail, exp.Name, ch.Code)
	return ch, nil
}

// Resend regenerates the code for an active challenge without moving the
// step. The old code silently stops matching.
func (s *deletionService) Resend(ctx context.Context, challengeID uint, ownerID, accountEmail string) error {
	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return ErrChallengeNotFound
	}
	if ch.OwnerID != ownerID {
		return ErrForbidden
	}
	if ch.Step != models.StepAwaitingCode {
		return ErrInvalidStep
	}

	ch.Code = generateVerificationCode()
	ch.Attempts = 0
	ch.ExpiresAt = time.Now().Add(challengeTTL)
	if err := s.challengeRepo.Update(ctx, ch); err != nil {
		return fmt.Errorf("update challenge: %w", err)
	}

	exp, err := s.expRepo.FindByID(ctx, ch.TargetExperienceID)
	name := ""
	if err == nil {
		name = exp.Name
	}
	s.mailCode(accountEmail, name, ch.Code)
	return nil
}

// Verify compares the supplied code case-insensitively. A mismatch leaves
// the challenge at awaiting_code so the caller may retry, up to the attempt
// limit; a match advances to confirmed.
func (s *deletionService) Verify(ctx context.Context, challengeID uint, ownerID, code string) error {
	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return ErrChallengeNotFound
	}
	if ch.OwnerID != ownerID {
		return ErrForbidden
	}
	if ch.Step != models.StepAwaitingCode {
		return ErrInvalidStep
	}
	if time.Now().After(ch.ExpiresAt) {
		_ = s.challengeRepo.Delete(ctx, s.expRepo.GetDB(), ch.ID)
		return ErrChallengeExpired
	}

	if !strings.EqualFold(code, ch.Code) {
		ch.Attempts++
		if ch.Attempts >= maxVerifyAttempts {
			_ = s.challengeRepo.Delete(ctx, s.expRepo.GetDB(), ch.ID)
			return ErrTooManyAttempts
		}
		if err := s.challengeRepo.Update(ctx, ch); err != nil {
			return fmt.Errorf("update challenge: %w", err)
		}
		return ErrVerificationFailed
	}

	ch.Step = models.StepConfirmed
	return s.challengeRepo.Update(ctx, ch)
}

// Confirm executes the cascade: cancel the experience, cancel every
// confirmed reservation, remove the records, then notify the holders. A
// partial failure leaves the challenge confirmed so the delete can be
// retried without re-verifying; retrying an already-deleted experience is a
// no-op.
func (s *deletionService) Confirm(ctx context.Context, challengeID uint, ownerID string) error {
	ch, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return ErrChallengeNotFound
	}
	if ch.OwnerID != ownerID {
		return ErrForbidden
	}
	if ch.Step != models.StepConfirmed {
		return ErrInvalidStep
	}

	exp, err := s.expRepo.FindByID(ctx, ch.TargetExperienceID)
	if err != nil {
		// A previous attempt already removed the experience; finish
		// cleaning up and report success.
		return s.challengeRepo.Delete(ctx, s.expRepo.GetDB(), ch.ID)
	}
	if exp.Status == models.ExperienceSoldOut {
		return ErrDeletionBlocked
	}

	var cancelled []models.Reservation

	err = s.expRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Terminal status first: nothing may book while the cascade runs.
		if err := s.expRepo.UpdateStatus(ctx, tx, exp.ID, models.ExperienceCancelled); err != nil {
			return err
		}

		// 2. Cancel all confirmed reservations, releasing their seats.
		cancelled, err = s.reservations.BulkCancelForExperience(ctx, tx, exp.ID)
		if err != nil {
			return err
		}

		// 3. Remove the experience and the spent challenge.
		if err := s.expRepo.Delete(ctx, tx, exp.ID); err != nil {
			return err
		}
		return s.challengeRepo.Delete(ctx, tx, ch.ID)
	})
	if err != nil {
		return fmt.Errorf("deletion cascade: %w", err)
	}

	for _, r := range cancelled {
		if err := s.notifier.Send(
			r.UserEmail,
			fmt.Sprintf("Experience cancelled: %s", exp.Name),
			fmt.Sprintf("Your reservation for %d seat(s) was cancelled because the experience was removed by its host.", r.Seats),
		); err != nil {
			log.Printf("[DeletionService] failed to queue cancellation notice for reservation %d: %v", r.ID, err)
		}
	}

	return nil
}

func (s *deletionService) mailCode(email, experienceName, code string) {
	body := fmt.Sprintf("Your verification code is: %s", code)
	if experienceName != "" {
		body = fmt.Sprintf("Your verification code to delete %q is: %s", experienceName, code)
	}
	if err := s.notifier.Send(email, deletionEmailSubject, body); err != nil {
		log.Printf("[DeletionService] failed to queue verification code: %v", err)
	}
}

// generateVerificationCode returns 4 digits followed by 3 uppercase letters,
// e.g. "4821QTX".
func generateVerificationCode() string {
	digits := 1000 + rand.Intn(9000)
	letters := make([]byte, 3)
	for i := range letters {
		letters[i] = byte('A' + rand.Intn(26))
	}
	return fmt.Sprintf("%d%s", digits, letters)
}
