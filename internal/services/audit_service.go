package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordAudit appends an entry to the audit trail inside the given
// transaction. Entries are never updated or deleted by normal flows.
func RecordAudit(tx *gorm.DB, action string, userID, projectID *uint, details map[string]interface{}) error {
	var payload datatypes.JSON
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	audit := models.Audit{
		Action:    action,
		UserID:    userID,
		ProjectID: projectID,
		Details:   payload,
	}
	return tx.Create(&audit).Error
}

// RefundRecorded reports whether an order_refunded audit referencing the
// given order already exists. The detail payload is scanned in application
// code so the check behaves identically on postgres and sqlite.
func RefundRecorded(tx *gorm.DB, orderID uint) (bool, error) {
	var audits []models.Audit
	if err := tx.Where("action = ?", models.AuditOrderRefunded).Find(&audits).Error; err != nil {
		return false, err
	}

	for _, a := range audits {
		if len(a.Details) == 0 {
			continue
		}
		var details map[string]interface{}
		if err := json.Unmarshal(a.Details, &details); err != nil {
			continue
		}
		// JSON numbers decode as float64.
		if id, ok := details["order_id"].(float64); ok && uint(id) == orderID {
			return true, nil
		}
	}
	return false, nil
}

// AuditFilter defines criteria for filtering audit entries.
type AuditFilter struct {
	UserID    *uint
	ProjectID *uint
	Action    *string
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	Limit     int
}

// FindAudits retrieves a paginated list of audit entries with filtering.
func FindAudits(filter AuditFilter) ([]models.Audit, int64, error) {
	var audits []models.Audit
	var total int64

	query := database.DB.Model(&models.Audit{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&audits).Error; err != nil {
		return nil, 0, err
	}

	return audits, total, nil
}

// GenerateAuditCSV generates a CSV export for audit entries.
func GenerateAuditCSV(audits []models.Audit) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Time", "Action", "User ID", "Project ID", "Details"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, a := range audits {
		userID := ""
		if a.UserID != nil {
			userID = fmt.Sprintf("%d", *a.UserID)
		}
		projectID := ""
		if a.ProjectID != nil {
			projectID = fmt.Sprintf("%d", *a.ProjectID)
		}
		record := []string{
			fmt.Sprintf("%d", a.ID),
			a.CreatedAt.Format(time.RFC3339),
			a.Action,
			userID,
			projectID,
			string(a.Details),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
