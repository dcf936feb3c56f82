package services

import (
	"testing"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateDevlogCapsToUndocumentedTime(t *testing.T) {
	setupTestDB()
	user := createTestUser("capper", 0, models.RoleUser)
	project := createTestProject(user.ID, 3600) // 60 minutes tracked

	devlog, err := CreateDevlog(project, "day one", "built the parser", 120)
	assert.NoError(t, err)
	assert.Equal(t, 60, devlog.DurationMinutes)

	remaining, err := UndocumentedSeconds(database.DB, project)
	assert.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestCreateDevlogDocumentsEverythingByDefault(t *testing.T) {
	setupTestDB()
	user := createTestUser("all", 0, models.RoleUser)
	project := createTestProject(user.ID, 2700) // 45 minutes

	devlog, err := CreateDevlog(project, "day one", "wrote the core loop", 0)
	assert.NoError(t, err)
	assert.Equal(t, 45, devlog.DurationMinutes)
}

func TestCreateDevlogRejectsBelowMinimum(t *testing.T) {
	setupTestDB()
	user := createTestUser("small", 0, models.RoleUser)
	project := createTestProject(user.ID, 600) // 10 minutes tracked

	_, err := CreateDevlog(project, "tiny", "just a tweak", 10)
	assert.ErrorIs(t, err, ErrInsufficientUndocumentedTime)
}

func TestCreateDevlogRejectsUntrackedProject(t *testing.T) {
	setupTestDB()
	user := createTestUser("untracked", 0, models.RoleUser)
	project := createTestProject(user.ID, 0)

	_, err := CreateDevlog(project, "nothing", "no time yet", 30)
	assert.ErrorIs(t, err, ErrProjectTimeNotSet)
}

func TestCreateDevlogSecondChunkUsesRemainder(t *testing.T) {
	setupTestDB()
	user := createTestUser("chunks", 0, models.RoleUser)
	project := createTestProject(user.ID, 3600)

	first, err := CreateDevlog(project, "morning", "setup", 40)
	assert.NoError(t, err)
	assert.Equal(t, 40, first.DurationMinutes)

	second, err := CreateDevlog(project, "afternoon", "polish", 0)
	assert.NoError(t, err)
	assert.Equal(t, 20, second.DurationMinutes)

	// 60 minutes fully documented; a third entry has nothing left to claim.
	_, err = CreateDevlog(project, "evening", "more polish", 15)
	assert.ErrorIs(t, err, ErrInsufficientUndocumentedTime)
}

func TestLockedDevlogRejectsEditAndDelete(t *testing.T) {
	setupTestDB()
	user := createTestUser("locked", 0, models.RoleUser)
	project := createTestProject(user.ID, 3600)

	devlog, err := CreateDevlog(project, "claimed", "shipped work", 30)
	assert.NoError(t, err)

	reqID := uint(42)
	err = database.DB.Model(devlog).Update("ship_request_id", reqID).Error
	assert.NoError(t, err)

	_, err = UpdateDevlog(devlog.ID, "new title", "new content")
	assert.ErrorIs(t, err, ErrDevlogLocked)

	err = DeleteDevlog(devlog.ID)
	assert.ErrorIs(t, err, ErrDevlogLocked)

	var kept models.Devlog
	assert.NoError(t, database.DB.First(&kept, devlog.ID).Error)
	assert.Equal(t, "claimed", kept.Title)
}

func TestUpdateDevlogKeepsDuration(t *testing.T) {
	setupTestDB()
	user := createTestUser("editor", 0, models.RoleUser)
	project := createTestProject(user.ID, 3600)

	devlog, err := CreateDevlog(project, "draft", "first pass", 30)
	assert.NoError(t, err)

	updated, err := UpdateDevlog(devlog.ID, "final", "second pass")
	assert.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, 30, updated.DurationMinutes)
}
