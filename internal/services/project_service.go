package services

import (
	"errors"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTargetClaimed   = errors.New("time-tracking target is already linked to another project")
)

// CreateProject creates a project owned by the user. Target names link the
// project to external time-tracking entries; a target claimed by any other
// project is rejected.
func CreateProject(user *models.User, name, description, repositoryURL string, targets []string) (*models.Project, error) {
	var project *models.Project
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, t := range targets {
			var count int64
			if err := tx.Model(&models.ProjectTarget{}).Where("name = ?", t).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrTargetClaimed
			}
		}

		project = &models.Project{
			UserID:        user.ID,
			Name:          name,
			Description:   description,
			RepositoryURL: repositoryURL,
			Status:        models.ProjectStatusUnshipped,
		}
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		for _, t := range targets {
			target := models.ProjectTarget{ProjectID: project.ID, Name: t}
			if err := tx.Create(&target).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrTargetClaimed
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func GetProject(projectID uint) (*models.Project, error) {
	var project models.Project
	if err := database.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindUserProjects lists a user's projects, newest first.
func FindUserProjects(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&projects).Error
	return projects, err
}

// FindProjects lists all projects for the admin console.
func FindProjects(page, limit int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	if err := database.DB.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	err := database.DB.Order("created_at desc").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// SetTotalSeconds stores the externally tracked total for a project. This is
// the entry point for the time-tracking integration; only positive values
// are accepted so a failed sync cannot wipe recorded time.
func SetTotalSeconds(projectID uint, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	result := database.DB.Model(&models.Project{}).
		Where("id = ?", projectID).Update("total_seconds", seconds)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteProject removes a project: devlogs and target links go with it,
// while ships, ship requests, and audits keep their rows with the project
// reference cleared.
func DeleteProject(projectID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Devlog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTarget{}).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&models.Ship{}, &models.ShipRequest{}, &models.Audit{}} {
			if err := tx.Model(m).Where("project_id = ?", projectID).
				Update("project_id", nil).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&project).Error
	})
}
