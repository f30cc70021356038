package repository

import (
	"context"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeRepository interface {
	Upsert(ctx context.Context, ch *models.VerificationChallenge) error
	FindByID(ctx context.Context, id uint) (*models.VerificationChallenge, error)
	Update(ctx context.Context, ch *models.VerificationChallenge) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

// Upsert replaces any active challenge for the same (owner, experience)
// pair, so a restarted deletion flow silently invalidates the old code.
func (r *challengeRepository) Upsert(ctx context.Context, ch *models.VerificationChallenge) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "target_experience_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "step", "attempts", "expires_at", "created_at"}),
	}).Create(ch).Error
}

func (r *challengeRepository) FindByID(ctx context.Context, id uint) (*models.VerificationChallenge, error) {
	var ch models.VerificationChallenge
	if err := r.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *challengeRepository) Update(ctx context.Context, ch *models.VerificationChallenge) error {
	return r.db.WithContext(ctx).Save(ch).Error
}

func (r *challengeRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.VerificationChallenge{}, id).Error
}
