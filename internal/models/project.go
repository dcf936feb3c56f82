package models

import "time"

// ProjectStatus is derived from the project's ship requests and ships and is
// maintained by the status resolver; the stored value is a cache.
type ProjectStatus string

const (
	ProjectStatusUnshipped ProjectStatus = "unshipped"
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusShipped   ProjectStatus = "shipped"
	ProjectStatusRejected  ProjectStatus = "rejected"
)

type Project struct {
	ID            uint `gorm:"primarykey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint `gorm:"index;not null"`
	User          User
	Name          string        `gorm:"type:varchar(200);not null"`
	Description   string        `gorm:"type:text"`
	RepositoryURL string        `gorm:"type:varchar(500)"`
	Status        ProjectStatus `gorm:"type:varchar(20);not null;default:'unshipped'"`
	Shipped       bool          `gorm:"not null;default:false"`
	ShippedAt     *time.Time
	// CreditsPerHour is the award rate; nil until an admin sets it.
	CreditsPerHour *float64 `gorm:"type:decimal(20,2)"`
	// TotalSeconds is the externally tracked total; refreshed by the
	// time-tracking integration.
	TotalSeconds    int `gorm:"not null;default:0"`
	ShipRequestedAt *time.Time
	ApprovedAt      *time.Time

	Devlogs      []Devlog
	Ships        []Ship
	ShipRequests []ShipRequest
	Targets      []ProjectTarget
}

// ProjectTarget links a project to an external time-tracking target name.
// The name is globally unique: two projects may not claim the same target.
type ProjectTarget struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	ProjectID uint   `gorm:"index;not null"`
	Name      string `gorm:"type:varchar(200);uniqueIndex;not null"`
}
