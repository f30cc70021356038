package repository

import (
	"context"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"gorm.io/gorm"
)

// CapacityLedger is the single source of truth for seat accounting. Both
// mutations are single conditional UPDATEs, so they stay correct under
// concurrent requests from any number of server processes; no in-memory
// locks are involved.
type CapacityLedger interface {
	TryReserve(ctx context.Context, tx *gorm.DB, experienceID uint, seats int) error
	Release(ctx context.Context, tx *gorm.DB, experienceID uint, seats int) error
	RecomputeStatus(ctx context.Context, tx *gorm.DB, experienceID uint) error
}

type capacityLedger struct{}

func NewCapacityLedger() CapacityLedger {
	return &capacityLedger{}
}

// TryReserve increments reserved_seats by seats only if the result stays
// within capacity. Zero affected rows means the seats are gone and nothing
// was changed.
func (l *capacityLedger) TryReserve(ctx context.Context, tx *gorm.DB, experienceID uint, seats int) error {
	result := tx.WithContext(ctx).
		Model(&models.Experience{}).
		Where("id = ? AND reserved_seats + ? <= capacity", experienceID, seats).
		UpdateColumn("reserved_seats", gorm.Expr("reserved_seats + ?", seats))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCapacityExceeded
	}
	return nil
}

// Release decrements reserved_seats by seats, floored at zero.
func (l *capacityLedger) Release(ctx context.Context, tx *gorm.DB, experienceID uint, seats int) error {
	return tx.WithContext(ctx).
		Model(&models.Experience{}).
		Where("id = ?", experienceID).
		UpdateColumn("reserved_seats", gorm.Expr("GREATEST(reserved_seats - ?, 0)", seats)).Error
}

// RecomputeStatus derives the lifecycle status from the current seat count:
// a full experience is sold_out, a sold_out one with freed seats goes back
// to active. Cancelled is terminal and never touched.
func (l *capacityLedger) RecomputeStatus(ctx context.Context, tx *gorm.DB, experienceID uint) error {
	return tx.WithContext(ctx).Exec(`
		UPDATE experiences
		SET status = CASE
			WHEN reserved_seats >= capacity THEN 'sold_out'
			WHEN status = 'sold_out' THEN 'active'
			ELSE status
		END
		WHERE id = ? AND status <> 'cancelled'
	`, experienceID).Error
}
