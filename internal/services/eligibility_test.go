package services

import (
	"testing"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEligibleForShipRequestNeedsFifteenMinutes(t *testing.T) {
	setupTestDB()
	user := createTestUser("elig", 0, models.RoleUser)
	project := createTestProject(user.ID, 3600)

	eligible, err := EligibleForShipRequest(database.DB, project)
	assert.NoError(t, err)
	assert.False(t, eligible)

	needed, err := MinutesNeededForShipRequest(database.DB, project)
	assert.NoError(t, err)
	assert.Equal(t, 15, needed)

	_, err = CreateDevlog(project, "work", "enough to count", 20)
	assert.NoError(t, err)

	eligible, err = EligibleForShipRequest(database.DB, project)
	assert.NoError(t, err)
	assert.True(t, eligible)

	needed, err = MinutesNeededForShipRequest(database.DB, project)
	assert.NoError(t, err)
	assert.Equal(t, 0, needed)
}

func TestEligibleForShipRequestBlockedWhilePending(t *testing.T) {
	setupTestDB()
	user := createTestUser("pending", 0, models.RoleUser)
	project := createTestProject(user.ID, 3600)

	_, err := CreateDevlog(project, "work", "plenty", 30)
	assert.NoError(t, err)

	project.Status = models.ProjectStatusPending
	eligible, err := EligibleForShipRequest(database.DB, project)
	assert.NoError(t, err)
	assert.False(t, eligible)
}

func TestShipBaselineExcludesPreShipDevlogs(t *testing.T) {
	setupTestDB()
	user := createTestUser("baseline", 0, models.RoleUser)
	project := createTestProject(user.ID, 7200)

	// An entry from before the last ship must not count again.
	old := models.Devlog{
		ProjectID:       project.ID,
		Title:           "pre-ship",
		DurationMinutes: 60,
		LogDate:         time.Now().Add(-48 * time.Hour),
		CreatedAt:       time.Now().Add(-48 * time.Hour),
	}
	assert.NoError(t, database.DB.Create(&old).Error)

	shippedAt := time.Now().Add(-time.Hour)
	project.ShippedAt = &shippedAt

	minutes, err := DevloggedMinutesSince(database.DB, project.ID, ShipBaseline(project))
	assert.NoError(t, err)
	assert.Equal(t, 0, minutes)

	eligible, err := EligibleForShipRequest(database.DB, project)
	assert.NoError(t, err)
	assert.False(t, eligible)
}

func TestEligibleForAdminShipFallsBackToTrackedTotal(t *testing.T) {
	setupTestDB()
	user := createTestUser("adminship", 0, models.RoleUser)

	// Pending project with no devlogs but 15 tracked minutes is approvable.
	project := createTestProject(user.ID, 900)
	assert.NoError(t, database.DB.Model(project).Update("status", models.ProjectStatusPending).Error)
	project.Status = models.ProjectStatusPending

	eligible, err := EligibleForAdminShip(database.DB, project)
	assert.NoError(t, err)
	assert.True(t, eligible)

	// Under the threshold on both counts.
	short := createTestProject(user.ID, 899)
	assert.NoError(t, database.DB.Model(short).Update("status", models.ProjectStatusPending).Error)
	short.Status = models.ProjectStatusPending

	eligible, err = EligibleForAdminShip(database.DB, short)
	assert.NoError(t, err)
	assert.False(t, eligible)
}

func TestEligibleForAdminShipRequiresPendingStatus(t *testing.T) {
	setupTestDB()
	user := createTestUser("notpending", 0, models.RoleUser)
	project := createTestProject(user.ID, 7200)

	eligible, err := EligibleForAdminShip(database.DB, project)
	assert.NoError(t, err)
	assert.False(t, eligible)
}
