package database

import (
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}

// Migrate creates the schema and the constraint-level guards the services
// rely on. The partial unique index on pending orders is the authoritative
// defense against concurrent duplicate submissions; the application-level
// pre-check is only an optimization.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectTarget{},
		&models.Devlog{},
		&models.ShipRequest{},
		&models.Ship{},
		&models.Product{},
		&models.Order{},
		&models.Audit{},
	)
	if err != nil {
		return err
	}

	// Partial indexes have the same syntax on postgres and sqlite.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_pending ` +
			`ON orders (user_id, product_id) WHERE status = 'pending'`,
	).Error
}
