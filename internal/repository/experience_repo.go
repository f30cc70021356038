package repository

import (
	"context"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExperienceFilter narrows the public experience listing.
type ExperienceFilter struct {
	City          string
	EventType     string
	AvailableOnly bool
}

type ExperienceRepository interface {
	Create(ctx context.Context, exp *models.Experience) error
	FindByID(ctx context.Context, id uint) (*models.Experience, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Experience, error)
	FindAll(ctx context.Context, filter ExperienceFilter) ([]models.Experience, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Experience, error)
	UpdateCapacity(ctx context.Context, tx *gorm.DB, id uint, capacity int) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ExperienceStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type experienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *experienceRepository) Create(ctx context.Context, exp *models.Experience) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *experienceRepository) FindByID(ctx context.Context, id uint) (*models.Experience, error) {
	var exp models.Experience
	if err := r.db.WithContext(ctx).First(&exp, id).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}

// FindByIDForUpdate acquires a row-level lock on the experience within the given transaction.
func (r *experienceRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Experience, error) {
	var exp models.Experience
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&exp, id).Error; err != nil {
		return nil, err
	}
	return &exp, nil
}

func (r *experienceRepository) FindAll(ctx context.Context, filter ExperienceFilter) ([]models.Experience, error) {
	var exps []models.Experience
	q := r.db.WithContext(ctx).Where("status <> ?", models.ExperienceCancelled)
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.AvailableOnly {
		q = q.Where("reserved_seats < capacity")
	}
	if err := q.Order("date_time ASC").Find(&exps).Error; err != nil {
		return nil, err
	}
	return exps, nil
}

func (r *experienceRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Experience, error) {
	var exps []models.Experience
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date_time ASC").
		Find(&exps).Error
	if err != nil {
		return nil, err
	}
	return exps, nil
}

func (r *experienceRepository) UpdateCapacity(ctx context.Context, tx *gorm.DB, id uint, capacity int) error {
	return tx.WithContext(ctx).
		Model(&models.Experience{}).
		Where("id = ?", id).
		UpdateColumn("capacity", capacity).Error
}

func (r *experienceRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ExperienceStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Experience{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *experienceRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Experience{}, id).Error
}
