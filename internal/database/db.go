package database

import (
	"log"

	"github.com/teaseong5-stack/azit-erp-backend/internal/config"
	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Partner{},
		&models.Reservation{},
		&models.Transaction{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Deliberately no unique index on the reservation natural key
	// (customer_id, reservation_date, start_date, category, tour_name):
	// the regular create path is allowed to produce duplicates. A plain
	// index keeps the bulk-import lookup cheap.
	DB.Exec(`CREATE INDEX IF NOT EXISTS idx_reservations_natural_key
		ON reservations (customer_id, reservation_date, start_date, category, tour_name)`)

	log.Println("Database connected, migration complete.")
}
