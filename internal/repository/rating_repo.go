package repository

import (
	"context"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	FindByReservationID(ctx context.Context, reservationID uint) (*models.Rating, error)
	FindByExperience(ctx context.Context, experienceID uint) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create relies on the unique index on reservation_id: a concurrent
// duplicate surfaces as gorm.ErrDuplicatedKey, never as a second row.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) FindByReservationID(ctx context.Context, reservationID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByExperience(ctx context.Context, experienceID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("experience_id = ?", experienceID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
