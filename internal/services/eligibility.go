package services

import (
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

// MinShipRequestMinutes is the documented time required since the baseline
// before a ship request may be opened or approved.
const MinShipRequestMinutes = 15

// ShipBaseline is the reference timestamp from which "new" devlogged time is
// measured: the last ship when one exists, otherwise project creation.
func ShipBaseline(project *models.Project) time.Time {
	if project.ShippedAt != nil {
		return *project.ShippedAt
	}
	return project.CreatedAt
}

// DevloggedMinutesSince sums devlog durations created on or after the
// baseline.
func DevloggedMinutesSince(tx *gorm.DB, projectID uint, baseline time.Time) (int, error) {
	var minutes int64
	err := tx.Model(&models.Devlog{}).
		Where("project_id = ? AND created_at >= ?", projectID, baseline).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&minutes).Error
	return int(minutes), err
}

// EligibleForShipRequest reports whether the owner may open a ship request:
// no request currently pending, and at least 15 documented minutes since the
// baseline.
func EligibleForShipRequest(tx *gorm.DB, project *models.Project) (bool, error) {
	if project.Status == models.ProjectStatusPending {
		return false, nil
	}
	minutes, err := DevloggedMinutesSince(tx, project.ID, ShipBaseline(project))
	if err != nil {
		return false, err
	}
	return minutes >= MinShipRequestMinutes, nil
}

// EligibleForAdminShip reports whether an admin may ship a pending project.
// The tracked-total fallback lets admins approve from externally tracked
// time when no devlog exists yet.
func EligibleForAdminShip(tx *gorm.DB, project *models.Project) (bool, error) {
	if project.Status != models.ProjectStatusPending {
		return false, nil
	}
	minutes, err := DevloggedMinutesSince(tx, project.ID, ShipBaseline(project))
	if err != nil {
		return false, err
	}
	if minutes >= MinShipRequestMinutes {
		return true, nil
	}
	return project.TotalSeconds >= MinShipRequestMinutes*60, nil
}

// MinutesNeededForShipRequest returns how many more documented minutes the
// project needs before a ship request can be opened.
func MinutesNeededForShipRequest(tx *gorm.DB, project *models.Project) (int, error) {
	minutes, err := DevloggedMinutesSince(tx, project.ID, ShipBaseline(project))
	if err != nil {
		return 0, err
	}
	needed := MinShipRequestMinutes - minutes
	if needed < 0 {
		needed = 0
	}
	return needed, nil
}
