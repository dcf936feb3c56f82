package models

import "time"

type ShipRequestStatus string

const (
	ShipRequestStatusPending  ShipRequestStatus = "pending"
	ShipRequestStatusApproved ShipRequestStatus = "approved"
	ShipRequestStatusRejected ShipRequestStatus = "rejected"
)

// ShipRequest is an owner-initiated request for admin review. At most one
// pending request should exist per project at a time.
type ShipRequest struct {
	ID               uint `gorm:"primarykey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	// ProjectID is cleared, not cascaded, when the project is destroyed.
	ProjectID        *uint `gorm:"index"`
	Project          *Project
	UserID           uint              `gorm:"index;not null"`
	Status           ShipRequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	RequestedAt      time.Time         `gorm:"not null"`
	ApprovedAt       *time.Time
	ProcessedByID    *uint
	DevloggedSeconds int      `gorm:"not null;default:0"`
	CreditsPerHour   *float64 `gorm:"type:decimal(20,2)"`
	CreditsAwarded   *float64 `gorm:"type:decimal(20,2)"`

	Devlogs []Devlog
}

func (r *ShipRequest) Pending() bool {
	return r.Status == ShipRequestStatusPending
}
