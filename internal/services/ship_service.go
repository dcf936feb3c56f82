package services

import (
	"errors"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotOwner              = errors.New("only the project owner can request a ship")
	ErrShipRequestPending    = errors.New("a ship request is already pending for this project")
	ErrNotEligible           = errors.New("project is not eligible for shipping")
	ErrShipRequestNotPending = errors.New("ship request is not pending")
	ErrShipRequestNotFound   = errors.New("ship request not found")
	ErrShipNotFound          = errors.New("ship not found")
)

// AwardCredits computes rate * hours for the given seconds and credits the
// recipient (the project owner when nil). A nil rate is a no-op. A seconds
// value of zero or below means "not supplied" and falls back to the
// project's tracked total; admin flows rely on that fallback.
func AwardCredits(project *models.Project, rate *float64, seconds int, recipient *models.User) (*float64, error) {
	var amount *float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		amount, err = awardCredits(tx, project, rate, seconds, recipient)
		return err
	})
	return amount, err
}

func awardCredits(tx *gorm.DB, project *models.Project, rate *float64, seconds int, recipient *models.User) (*float64, error) {
	if rate == nil {
		return nil, nil
	}

	effective := seconds
	if effective <= 0 {
		effective = project.TotalSeconds
	}
	amount := *rate * float64(effective) / 3600.0

	target := recipient
	if target == nil {
		var owner models.User
		if err := tx.First(&owner, project.UserID).Error; err != nil {
			return nil, err
		}
		target = &owner
	}

	err := tx.Model(&models.User{}).Where("id = ?", target.ID).
		Updates(map[string]interface{}{
			"currency": gorm.Expr("currency + ?", amount),
			"version":  gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return nil, err
	}
	invalidateUserCache(target.ID)

	return &amount, nil
}

// ShipAndAward creates a Ship snapshot and awards credits in one atomic
// transaction. Each call is a distinct shipment: calling it twice creates
// two Ship rows and awards twice.
func ShipAndAward(projectID uint, admin *models.User, rate *float64, devloggedSeconds int, shippedAt time.Time, recipient *models.User) (*models.Ship, error) {
	var ship *models.Ship
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := forUpdate(tx).First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var err error
		ship, err = shipAndAward(tx, &project, admin, rate, devloggedSeconds, shippedAt, recipient)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ship, nil
}

func shipAndAward(tx *gorm.DB, project *models.Project, admin *models.User, rate *float64, devloggedSeconds int, shippedAt time.Time, recipient *models.User) (*models.Ship, error) {
	if rate != nil {
		if err := tx.Model(project).Update("credits_per_hour", *rate).Error; err != nil {
			return nil, err
		}
		project.CreditsPerHour = rate
	}

	used := devloggedSeconds
	if used <= 0 {
		used = project.TotalSeconds
	}

	amount, err := awardCredits(tx, project, rate, used, recipient)
	if err != nil {
		return nil, err
	}

	ship := &models.Ship{
		ProjectID:        &project.ID,
		UserID:           admin.ID,
		ShippedAt:        shippedAt,
		DevloggedSeconds: used,
	}
	if amount != nil {
		ship.CreditsAwarded = *amount
	}
	if err := tx.Create(ship).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(project).Update("approved_at", shippedAt).Error; err != nil {
		return nil, err
	}
	approvedAt := shippedAt
	project.ApprovedAt = &approvedAt

	if amount != nil {
		details := map[string]interface{}{
			"amount": *amount,
			"rate":   *rate,
			"hours":  float64(used) / 3600.0,
		}
		if recipient != nil {
			details["recipient_id"] = recipient.ID
		}
		if err := RecordAudit(tx, models.AuditCreditAwarded, &admin.ID, &project.ID, details); err != nil {
			return nil, err
		}
	}

	if err := associatePendingRequest(tx, ship); err != nil {
		return nil, err
	}
	if err := RecalculateStatus(tx, project.ID); err != nil {
		return nil, err
	}

	return ship, nil
}

// RequestShip opens a pending ship request for the project owner. Unclaimed
// devlogs created since the baseline are linked to the request, freezing
// which entries counted toward it.
func RequestShip(projectID uint, user *models.User) (*models.ShipRequest, error) {
	var req *models.ShipRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if project.UserID != user.ID {
			return ErrNotOwner
		}

		var pendingCount int64
		err := tx.Model(&models.ShipRequest{}).
			Where("project_id = ? AND status = ?", project.ID, models.ShipRequestStatusPending).
			Count(&pendingCount).Error
		if err != nil {
			return err
		}
		if pendingCount > 0 {
			return ErrShipRequestPending
		}

		eligible, err := EligibleForShipRequest(tx, &project)
		if err != nil {
			return err
		}
		if !eligible {
			return ErrNotEligible
		}

		baseline := ShipBaseline(&project)
		var minutes int64
		err = tx.Model(&models.Devlog{}).
			Where("project_id = ? AND created_at >= ? AND ship_request_id IS NULL", project.ID, baseline).
			Select("COALESCE(SUM(duration_minutes), 0)").
			Scan(&minutes).Error
		if err != nil {
			return err
		}

		now := time.Now()
		req = &models.ShipRequest{
			ProjectID:        &project.ID,
			UserID:           user.ID,
			Status:           models.ShipRequestStatusPending,
			RequestedAt:      now,
			DevloggedSeconds: int(minutes) * 60,
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		err = tx.Model(&models.Devlog{}).
			Where("project_id = ? AND created_at >= ? AND ship_request_id IS NULL", project.ID, baseline).
			Update("ship_request_id", req.ID).Error
		if err != nil {
			return err
		}

		err = tx.Model(&project).Updates(map[string]interface{}{
			"ship_requested_at": now,
		}).Error
		if err != nil {
			return err
		}

		err = RecordAudit(tx, models.AuditShipRequest, &user.ID, &project.ID, map[string]interface{}{
			"requested_at":      req.RequestedAt,
			"devlogged_seconds": req.DevloggedSeconds,
		})
		if err != nil {
			return err
		}

		return RecalculateStatus(tx, project.ID)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveShipRequest ships the project behind a pending request. Rate
// priority: explicit parameter, then the request's stored rate, then the
// project's rate. When a recipient is given the award goes to them instead
// of the project owner.
func ApproveShipRequest(requestID uint, admin *models.User, rate *float64, recipientUserID *uint) (*models.Ship, error) {
	var ship *models.Ship
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ShipRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShipRequestNotFound
			}
			return err
		}
		if !req.Pending() {
			return ErrShipRequestNotPending
		}
		if req.ProjectID == nil {
			return ErrProjectNotFound
		}

		var project models.Project
		if err := forUpdate(tx).First(&project, *req.ProjectID).Error; err != nil {
			return err
		}

		seconds := req.DevloggedSeconds
		if seconds <= 0 {
			var minutes int64
			err := tx.Model(&models.Devlog{}).
				Where("ship_request_id = ?", req.ID).
				Select("COALESCE(SUM(duration_minutes), 0)").
				Scan(&minutes).Error
			if err != nil {
				return err
			}
			seconds = int(minutes) * 60
		}

		effRate := rate
		if effRate == nil {
			effRate = req.CreditsPerHour
		}
		if effRate == nil {
			effRate = project.CreditsPerHour
		}

		var recipient *models.User
		if recipientUserID != nil {
			var u models.User
			if err := tx.First(&u, *recipientUserID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRecipientNotFound
				}
				return err
			}
			recipient = &u
		}

		var err error
		ship, err = shipAndAward(tx, &project, admin, effRate, seconds, time.Now(), recipient)
		if err != nil {
			return err
		}

		// The ship creation already reconciled the pending request; restamp
		// explicitly so the approving admin is recorded even when timestamps
		// do not line up.
		err = tx.Model(&req).Updates(map[string]interface{}{
			"status":            models.ShipRequestStatusApproved,
			"approved_at":       ship.ShippedAt,
			"processed_by_id":   admin.ID,
			"credits_awarded":   ship.CreditsAwarded,
			"devlogged_seconds": ship.DevloggedSeconds,
		}).Error
		if err != nil {
			return err
		}

		details := map[string]interface{}{
			"ship_request_id": req.ID,
			"ship_id":         ship.ID,
		}
		if effRate != nil {
			details["credits_per_hour"] = *effRate
		}
		if recipientUserID != nil {
			details["recipient_user_id"] = *recipientUserID
		}
		err = RecordAudit(tx, models.AuditApproveShipRequest, &admin.ID, &project.ID, details)
		if err != nil {
			return err
		}

		return RecalculateStatus(tx, project.ID)
	})
	if err != nil {
		return nil, err
	}
	return ship, nil
}

// RejectShipRequest turns down a pending request.
func RejectShipRequest(requestID uint, admin *models.User) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ShipRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShipRequestNotFound
			}
			return err
		}
		if !req.Pending() {
			return ErrShipRequestNotPending
		}

		now := time.Now()
		err := tx.Model(&req).Updates(map[string]interface{}{
			"status":          models.ShipRequestStatusRejected,
			"approved_at":     now,
			"processed_by_id": admin.ID,
		}).Error
		if err != nil {
			return err
		}

		err = RecordAudit(tx, models.AuditRejectShipRequest, &admin.ID, req.ProjectID, map[string]interface{}{
			"ship_request_id": req.ID,
		})
		if err != nil {
			return err
		}

		if req.ProjectID != nil {
			return RecalculateStatus(tx, *req.ProjectID)
		}
		return nil
	})
}

// AdminShip ships a pending project directly, without an explicit approval
// of the request; the devlogged seconds fall back to the tracked total.
func AdminShip(projectID uint, admin *models.User, rate *float64) (*models.Ship, error) {
	var ship *models.Ship
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := forUpdate(tx).First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		eligible, err := EligibleForAdminShip(tx, &project)
		if err != nil {
			return err
		}
		if !eligible {
			return ErrNotEligible
		}

		ship, err = shipAndAward(tx, &project, admin, rate, 0, time.Now(), nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ship, nil
}

// ShipUpdate carries the fields an admin may correct on an existing ship.
type ShipUpdate struct {
	DevloggedSeconds *int
	CreditsAwarded   *float64
	ShippedAt        *time.Time
	CreditsPerHour   *float64
	Recalculate      bool
}

// UpdateShip corrects a ship snapshot. Changing the awarded credits books a
// compensating currency delta against the project owner in the same
// transaction.
func UpdateShip(shipID uint, admin *models.User, upd ShipUpdate) (*models.Ship, error) {
	var ship models.Ship
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ship, shipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShipNotFound
			}
			return err
		}
		if ship.ProjectID == nil {
			return ErrProjectNotFound
		}

		var project models.Project
		if err := tx.First(&project, *ship.ProjectID).Error; err != nil {
			return err
		}

		if upd.Recalculate {
			rate := upd.CreditsPerHour
			if rate == nil {
				rate = project.CreditsPerHour
			}
			if rate != nil {
				seconds := ship.DevloggedSeconds
				if upd.DevloggedSeconds != nil {
					seconds = *upd.DevloggedSeconds
				}
				computed := *rate * float64(seconds) / 3600.0
				upd.CreditsAwarded = &computed
			}
		}

		oldCredits := ship.CreditsAwarded
		newCredits := oldCredits
		if upd.CreditsAwarded != nil {
			newCredits = *upd.CreditsAwarded
		}
		delta := newCredits - oldCredits

		updates := map[string]interface{}{}
		if upd.DevloggedSeconds != nil {
			updates["devlogged_seconds"] = *upd.DevloggedSeconds
		}
		if upd.CreditsAwarded != nil {
			updates["credits_awarded"] = newCredits
		}
		if upd.ShippedAt != nil {
			updates["shipped_at"] = *upd.ShippedAt
		}
		if len(updates) > 0 {
			if err := tx.Model(&ship).Updates(updates).Error; err != nil {
				return err
			}
		}

		if delta != 0 {
			err := tx.Model(&models.User{}).Where("id = ?", project.UserID).
				Updates(map[string]interface{}{
					"currency": gorm.Expr("currency + ?", delta),
					"version":  gorm.Expr("version + 1"),
				}).Error
			if err != nil {
				return err
			}
			invalidateUserCache(project.UserID)

			err = RecordAudit(tx, models.AuditAdjustShipCredits, &admin.ID, &project.ID, map[string]interface{}{
				"ship_id":     ship.ID,
				"delta":       delta,
				"new_credits": newCredits,
			})
			if err != nil {
				return err
			}
		}

		err := RecordAudit(tx, models.AuditUpdateShip, &admin.ID, &project.ID, map[string]interface{}{
			"ship_id": ship.ID,
		})
		if err != nil {
			return err
		}

		return RecalculateStatus(tx, project.ID)
	})
	if err != nil {
		return nil, err
	}
	return &ship, nil
}

// BulkShip ships a set of projects at a flat rate, one transaction per
// project so a single failure does not roll back the batch.
func BulkShip(projectIDs []uint, admin *models.User, rate float64) ([]*models.Ship, error) {
	ships := make([]*models.Ship, 0, len(projectIDs))
	for _, id := range projectIDs {
		var project models.Project
		if err := database.DB.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return ships, err
		}

		ship, err := ShipAndAward(id, admin, &rate, project.TotalSeconds, time.Now(), nil)
		if err != nil {
			return ships, err
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

// FindShipRequests lists ship requests, newest first, optionally scoped to a
// project.
func FindShipRequests(projectID *uint) ([]models.ShipRequest, error) {
	query := database.DB.Model(&models.ShipRequest{}).Preload("Project")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	var requests []models.ShipRequest
	err := query.Order("requested_at desc").Find(&requests).Error
	return requests, err
}

// FindShips lists recent ships for the admin console.
func FindShips(limit int) ([]models.Ship, error) {
	if limit <= 0 {
		limit = 100
	}
	var ships []models.Ship
	err := database.DB.Preload("Project").Order("shipped_at desc").Limit(limit).Find(&ships).Error
	return ships, err
}
