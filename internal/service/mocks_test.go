package service

import (
	"context"
	"sync"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"gorm.io/gorm"
)

// --- Mock ExperienceRepository ---

type mockExperienceRepo struct {
	createFn         func(ctx context.Context, exp *models.Experience) error
	findByIDFn       func(ctx context.Context, id uint) (*models.Experience, error)
	findAllFn        func(ctx context.Context, filter repository.ExperienceFilter) ([]models.Experience, error)
	findByOwnerFn    func(ctx context.Context, ownerID string) ([]models.Experience, error)
	updateStatusFn   func(ctx context.Context, tx *gorm.DB, id uint, status models.ExperienceStatus) error
	updateCapacityFn func(ctx context.Context, tx *gorm.DB, id uint, capacity int) error
	deleteFn         func(ctx context.Context, tx *gorm.DB, id uint) error
}

func (m *mockExperienceRepo) Create(ctx context.Context, exp *models.Experience) error {
	return m.createFn(ctx, exp)
}
func (m *mockExperienceRepo) FindByID(ctx context.Context, id uint) (*models.Experience, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockExperienceRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Experience, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockExperienceRepo) FindAll(ctx context.Context, filter repository.ExperienceFilter) ([]models.Experience, error) {
	return m.findAllFn(ctx, filter)
}
func (m *mockExperienceRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.Experience, error) {
	return m.findByOwnerFn(ctx, ownerID)
}
func (m *mockExperienceRepo) UpdateCapacity(ctx context.Context, tx *gorm.DB, id uint, capacity int) error {
	if m.updateCapacityFn != nil {
		return m.updateCapacityFn(ctx, tx, id, capacity)
	}
	return nil
}
func (m *mockExperienceRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ExperienceStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, id, status)
	}
	return nil
}
func (m *mockExperienceRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}
func (m *mockExperienceRepo) GetDB() *gorm.DB { return nil }

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, res *models.Reservation) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Reservation, error)
	findByUserFn        func(ctx context.Context, userID string) ([]models.Reservation, error)
	findByExperienceFn  func(ctx context.Context, experienceID uint, status *models.ReservationStatus) ([]models.Reservation, error)
	cancelIfConfirmedFn func(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	return m.createFn(ctx, tx, res)
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReservationRepo) FindByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return m.findByUserFn(ctx, userID)
}
func (m *mockReservationRepo) FindByExperience(ctx context.Context, experienceID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	return m.findByExperienceFn(ctx, experienceID, status)
}
func (m *mockReservationRepo) FindConfirmedForUpdate(ctx context.Context, tx *gorm.DB, experienceID uint) ([]models.Reservation, error) {
	confirmed := models.ReservationConfirmed
	return m.findByExperienceFn(ctx, experienceID, &confirmed)
}
func (m *mockReservationRepo) CancelIfConfirmed(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	return m.cancelIfConfirmedFn(ctx, tx, id)
}
func (m *mockReservationRepo) GetDB() *gorm.DB { return nil }

// --- Mock RatingRepository ---

type mockRatingRepo struct {
	createFn            func(ctx context.Context, rating *models.Rating) error
	findByReservationFn func(ctx context.Context, reservationID uint) (*models.Rating, error)
	findByExperienceFn  func(ctx context.Context, experienceID uint) ([]models.Rating, error)
}

func (m *mockRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	return m.createFn(ctx, rating)
}
func (m *mockRatingRepo) FindByReservationID(ctx context.Context, reservationID uint) (*models.Rating, error) {
	return m.findByReservationFn(ctx, reservationID)
}
func (m *mockRatingRepo) FindByExperience(ctx context.Context, experienceID uint) ([]models.Rating, error) {
	return m.findByExperienceFn(ctx, experienceID)
}

// --- Mock ChallengeRepository ---

type mockChallengeRepo struct {
	upsertFn   func(ctx context.Context, ch *models.VerificationChallenge) error
	findByIDFn func(ctx context.Context, id uint) (*models.VerificationChallenge, error)
	updateFn   func(ctx context.Context, ch *models.VerificationChallenge) error
	deleteFn   func(ctx context.Context, tx *gorm.DB, id uint) error
}

func (m *mockChallengeRepo) Upsert(ctx context.Context, ch *models.VerificationChallenge) error {
	return m.upsertFn(ctx, ch)
}
func (m *mockChallengeRepo) FindByID(ctx context.Context, id uint) (*models.VerificationChallenge, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockChallengeRepo) Update(ctx context.Context, ch *models.VerificationChallenge) error {
	return m.updateFn(ctx, ch)
}
func (m *mockChallengeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}

// --- Mock Notifier ---

type sentEmail struct {
	to, subject, body string
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (m *mockNotifier) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockNotifier) last() sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
