package models

import "time"

// Ship is an immutable snapshot marking a project as delivered. Its creation
// is the single fact that moves a project into the shipped state; corrections
// go through the admin ship-update path which books a compensating currency
// delta.
type Ship struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	// ProjectID is cleared, not cascaded, when the project is destroyed.
	ProjectID *uint `gorm:"index"`
	Project   *Project
	// UserID is the admin who performed the ship.
	UserID           uint      `gorm:"index;not null"`
	ShippedAt        time.Time `gorm:"not null;index"`
	DevloggedSeconds int       `gorm:"not null;default:0"`
	CreditsAwarded   float64   `gorm:"type:decimal(20,2);not null;default:0"`
}
