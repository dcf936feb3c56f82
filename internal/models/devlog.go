package models

import "time"

// Devlog is a discrete chunk of documented development time. Once linked to a
// ShipRequest it is frozen: the linked entries define what counted toward
// that request.
type Devlog struct {
	ID              uint `gorm:"primarykey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProjectID       uint `gorm:"index;not null"`
	ShipRequestID   *uint
	Title           string    `gorm:"type:varchar(200)"`
	Content         string    `gorm:"type:text"`
	DurationMinutes int       `gorm:"not null"`
	LogDate         time.Time `gorm:"type:date"`
}

// Locked reports whether this entry has been claimed by a ship request.
func (d *Devlog) Locked() bool {
	return d.ShipRequestID != nil
}
