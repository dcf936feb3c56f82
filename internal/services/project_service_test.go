package services

import (
	"testing"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateProjectClaimsTargets(t *testing.T) {
	setupTestDB()
	user := createTestUser("creator", 0, models.RoleUser)

	project, err := CreateProject(user, "Tracker", "a tracker", "https://github.com/x/tracker", []string{"tracker-dev"})
	assert.NoError(t, err)
	assert.Equal(t, models.ProjectStatusUnshipped, project.Status)

	var targets []models.ProjectTarget
	assert.NoError(t, database.DB.Where("project_id = ?", project.ID).Find(&targets).Error)
	assert.Len(t, targets, 1)

	// The same target name cannot back a second project.
	_, err = CreateProject(user, "Copycat", "", "https://github.com/x/copycat", []string{"tracker-dev"})
	assert.ErrorIs(t, err, ErrTargetClaimed)
}

func TestSetTotalSecondsIgnoresNonPositive(t *testing.T) {
	setupTestDB()
	user := createTestUser("timer", 0, models.RoleUser)
	project := createTestProject(user.ID, 100)

	assert.NoError(t, SetTotalSeconds(project.ID, 5000))

	// A failed sync reporting zero must not wipe the recorded total.
	assert.NoError(t, SetTotalSeconds(project.ID, 0))
	assert.NoError(t, SetTotalSeconds(project.ID, -10))

	var refreshed models.Project
	assert.NoError(t, database.DB.First(&refreshed, project.ID).Error)
	assert.Equal(t, 5000, refreshed.TotalSeconds)

	assert.ErrorIs(t, SetTotalSeconds(9999, 100), ErrProjectNotFound)
}

func TestDeleteProjectNullifiesShipHistory(t *testing.T) {
	setupTestDB()
	owner := createTestUser("demolisher", 0, models.RoleUser)
	admin := createTestUser("demoadmin", 0, models.RoleAdmin)
	project := createTestProject(owner.ID, 3600)

	devlog, err := CreateDevlog(project, "work", "thirty minutes", 30)
	assert.NoError(t, err)
	_, err = RequestShip(project.ID, owner)
	assert.NoError(t, err)
	ship, err := ShipAndAward(project.ID, admin, floatPtr(10.0), 1800, time.Now(), nil)
	assert.NoError(t, err)

	assert.NoError(t, DeleteProject(project.ID))

	// Devlogs and targets are gone with the project.
	var devlogCount int64
	database.DB.Model(&models.Devlog{}).Where("id = ?", devlog.ID).Count(&devlogCount)
	assert.Equal(t, int64(0), devlogCount)

	// Ship and request history survives with the project reference cleared.
	var keptShip models.Ship
	assert.NoError(t, database.DB.First(&keptShip, ship.ID).Error)
	assert.Nil(t, keptShip.ProjectID)

	var keptReq models.ShipRequest
	assert.NoError(t, database.DB.Where("user_id = ?", owner.ID).First(&keptReq).Error)
	assert.Nil(t, keptReq.ProjectID)

	_, err = GetProject(project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
