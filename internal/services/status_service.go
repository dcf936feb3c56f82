package services

import (
	"errors"

	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

// ComputedStatus derives a project's lifecycle state from its ship requests
// and ships. The stored status column is only a cache of this value.
func ComputedStatus(tx *gorm.DB, projectID uint) (models.ProjectStatus, error) {
	var pendingCount int64
	err := tx.Model(&models.ShipRequest{}).
		Where("project_id = ? AND status = ?", projectID, models.ShipRequestStatusPending).
		Count(&pendingCount).Error
	if err != nil {
		return "", err
	}
	if pendingCount > 0 {
		return models.ProjectStatusPending, nil
	}

	var latest models.ShipRequest
	err = tx.Where("project_id = ?", projectID).
		Order("updated_at desc").First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if err == nil && latest.Status == models.ShipRequestStatusRejected {
		return models.ProjectStatusRejected, nil
	}

	var shipCount int64
	err = tx.Model(&models.Ship{}).Where("project_id = ?", projectID).Count(&shipCount).Error
	if err != nil {
		return "", err
	}
	if shipCount > 0 {
		return models.ProjectStatusShipped, nil
	}

	return models.ProjectStatusUnshipped, nil
}

// RecalculateStatus recomputes and persists the project's status and its
// shipped/shipped_at cache. Every create, update, or delete of a Ship or
// ShipRequest must run this before its transaction returns, including bulk
// admin operations.
func RecalculateStatus(tx *gorm.DB, projectID uint) error {
	status, err := ComputedStatus(tx, projectID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":     status,
		"shipped":    false,
		"shipped_at": nil,
	}

	if status == models.ProjectStatusShipped {
		var latest models.Ship
		err := tx.Where("project_id = ?", projectID).
			Order("shipped_at desc").First(&latest).Error
		if err != nil {
			return err
		}
		updates["shipped"] = true
		updates["shipped_at"] = latest.ShippedAt
	}

	if status != models.ProjectStatusPending {
		updates["ship_requested_at"] = nil
	}

	return tx.Model(&models.Project{}).Where("id = ?", projectID).Updates(updates).Error
}

// associatePendingRequest reconciles a freshly created ship with the closest
// preceding pending ship request: the request is auto-approved and stamped
// with the ship's award so the owner-requested and admin-shipped code paths
// converge on one request state.
func associatePendingRequest(tx *gorm.DB, ship *models.Ship) error {
	if ship.ProjectID == nil {
		return nil
	}

	var req models.ShipRequest
	err := tx.Where("project_id = ? AND status = ? AND requested_at <= ?",
		*ship.ProjectID, models.ShipRequestStatusPending, ship.ShippedAt).
		Order("requested_at desc").First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	seconds := ship.DevloggedSeconds
	if seconds <= 0 {
		seconds = req.DevloggedSeconds
	}

	err = tx.Model(&req).Updates(map[string]interface{}{
		"status":            models.ShipRequestStatusApproved,
		"approved_at":       ship.ShippedAt,
		"processed_by_id":   ship.UserID,
		"credits_awarded":   ship.CreditsAwarded,
		"devlogged_seconds": seconds,
	}).Error
	if err != nil {
		return err
	}

	return RecordAudit(tx, models.AuditApproveViaShip, &ship.UserID, ship.ProjectID, map[string]interface{}{
		"ship_id":         ship.ID,
		"ship_request_id": req.ID,
		"credits_awarded": ship.CreditsAwarded,
	})
}
