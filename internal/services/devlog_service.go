package services

import (
	"errors"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

// MinDevlogMinutes is the minimum chunk of time a devlog may document.
const MinDevlogMinutes = 15

var (
	ErrInsufficientUndocumentedTime = errors.New("not enough undocumented time left (minimum 15 minutes required)")
	ErrProjectTimeNotSet            = errors.New("project has no tracked time yet")
	ErrDevlogLocked                 = errors.New("devlog is linked to a ship request and cannot be changed")
	ErrDevlogNotFound               = errors.New("devlog not found")
)

// TotalDocumentedSeconds sums the project's devlogged time in seconds.
func TotalDocumentedSeconds(tx *gorm.DB, projectID uint) (int, error) {
	var minutes int64
	err := tx.Model(&models.Devlog{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&minutes).Error
	if err != nil {
		return 0, err
	}
	return int(minutes) * 60, nil
}

// UndocumentedSeconds is the externally tracked total minus documented time,
// floored at zero. Documented time must never exceed the tracked total.
func UndocumentedSeconds(tx *gorm.DB, project *models.Project) (int, error) {
	documented, err := TotalDocumentedSeconds(tx, project.ID)
	if err != nil {
		return 0, err
	}
	remaining := project.TotalSeconds - documented
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// CreateDevlog documents a chunk of the project's undocumented time. The
// caller may request a duration in minutes; it is capped to the remaining
// undocumented time and rejected if below the minimum after capping. A
// requestedMinutes of 0 means "document everything that remains".
func CreateDevlog(project *models.Project, title, content string, requestedMinutes int) (*models.Devlog, error) {
	if project.TotalSeconds <= 0 {
		return nil, ErrProjectTimeNotSet
	}

	var devlog *models.Devlog
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		remaining, err := UndocumentedSeconds(tx, project)
		if err != nil {
			return err
		}
		if remaining < MinDevlogMinutes*60 {
			return ErrInsufficientUndocumentedTime
		}

		minutes := remaining / 60
		if requestedMinutes > 0 && requestedMinutes < minutes {
			minutes = requestedMinutes
		}
		if minutes < MinDevlogMinutes {
			return ErrInsufficientUndocumentedTime
		}

		devlog = &models.Devlog{
			ProjectID:       project.ID,
			Title:           title,
			Content:         content,
			DurationMinutes: minutes,
			LogDate:         time.Now(),
		}
		return tx.Create(devlog).Error
	})
	if err != nil {
		return nil, err
	}
	return devlog, nil
}

// UpdateDevlog edits an entry's text. Entries claimed by a ship request are
// frozen.
func UpdateDevlog(devlogID uint, title, content string) (*models.Devlog, error) {
	var devlog models.Devlog
	if err := database.DB.First(&devlog, devlogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDevlogNotFound
		}
		return nil, err
	}
	if devlog.Locked() {
		return nil, ErrDevlogLocked
	}

	devlog.Title = title
	devlog.Content = content
	if err := database.DB.Save(&devlog).Error; err != nil {
		return nil, err
	}
	return &devlog, nil
}

// DeleteDevlog removes an entry unless a ship request has claimed it.
func DeleteDevlog(devlogID uint) error {
	var devlog models.Devlog
	if err := database.DB.First(&devlog, devlogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDevlogNotFound
		}
		return err
	}
	if devlog.Locked() {
		return ErrDevlogLocked
	}
	return database.DB.Delete(&devlog).Error
}

// GetDevlog fetches one entry by ID.
func GetDevlog(devlogID uint) (*models.Devlog, error) {
	var devlog models.Devlog
	if err := database.DB.First(&devlog, devlogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDevlogNotFound
		}
		return nil, err
	}
	return &devlog, nil
}

// FindDevlogs lists a project's entries, newest first.
func FindDevlogs(projectID uint) ([]models.Devlog, error) {
	var devlogs []models.Devlog
	err := database.DB.Where("project_id = ?", projectID).
		Order("created_at desc").Find(&devlogs).Error
	return devlogs, err
}
