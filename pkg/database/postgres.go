package database

import (
	"log"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Experience{},
		&models.Reservation{},
		&models.Rating{},
		&models.VerificationChallenge{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// DB-level backstop for the ledger invariant: 0 <= reserved_seats <= capacity
	db.Exec(`ALTER TABLE experiences DROP CONSTRAINT IF EXISTS chk_experiences_seats`)
	db.Exec(`
		ALTER TABLE experiences
		ADD CONSTRAINT chk_experiences_seats
		CHECK (reserved_seats >= 0 AND reserved_seats <= capacity)
	`)

	return db
}
