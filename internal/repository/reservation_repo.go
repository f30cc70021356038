package repository

import (
	"context"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	FindByExperience(ctx context.Context, experienceID uint, status *models.ReservationStatus) ([]models.Reservation, error)
	FindConfirmedForUpdate(ctx context.Context, tx *gorm.DB, experienceID uint) ([]models.Reservation, error)
	CancelIfConfirmed(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, res *models.Reservation) error {
	return tx.WithContext(ctx).Create(res).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) FindByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reservationRepository) FindByExperience(ctx context.Context, experienceID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	var out []models.Reservation
	q := r.db.WithContext(ctx).Where("experience_id = ?", experienceID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindConfirmedForUpdate locks the confirmed reservations of an experience
// for the duration of the transaction. Used by the deletion cascade so no
// new cancellation can race with the bulk cancel.
func (r *reservationRepository) FindConfirmedForUpdate(ctx context.Context, tx *gorm.DB, experienceID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("experience_id = ? AND status = ?", experienceID, models.ReservationConfirmed).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelIfConfirmed flips a reservation to cancelled only if it is still
// confirmed. The boolean reports whether the flip happened, which guards
// against releasing the same seats twice.
func (r *reservationRepository) CancelIfConfirmed(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.ReservationConfirmed).
		Update("status", models.ReservationCancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
