package services

import (
	"testing"
	"time"

	"github.com/Acidicts/Metroid-Mania/config"
	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFindUserByIDCachesInRedis(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	user := createTestUser("cached", 50, models.RoleUser)

	found, err := FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, mr.Exists(userCacheKey(user.ID)))

	// A stale cache would miss this; the award invalidates it.
	project := createTestProject(user.ID, 3600)
	admin := createTestUser("cacheadmin", 0, models.RoleAdmin)
	_, err = ShipAndAward(project.ID, admin, floatPtr(10.0), 3600, time.Now(), nil)
	assert.NoError(t, err)

	found, err = FindUserByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, found.Currency)
}

func TestAdjustBalanceRecordsAudit(t *testing.T) {
	setupTestDB()
	user := createTestUser("adjusted", 20, models.RoleUser)
	admin := createTestUser("adjuster", 0, models.RoleAdmin)

	updated, err := AdjustBalance(user.ID, -5, admin, "manual correction")
	assert.NoError(t, err)
	assert.Equal(t, 15.0, updated.Currency)

	var count int64
	database.DB.Model(&models.Audit{}).Where("action = ?", models.AuditAdjustBalance).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err = AdjustBalance(9999, 5, admin, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserReassignsRecordsToSystemUser(t *testing.T) {
	setupTestDB()
	user := createTestUser("leaver", 100, models.RoleUser)
	admin := createTestUser("remover", 0, models.RoleAdmin)

	project := createTestProject(user.ID, 3600)
	product := createTestProduct("keepsake", 10)
	order, err := CreateOrder(user, product.ID, nil)
	assert.NoError(t, err)

	assert.NoError(t, DeleteUser(user.ID, admin))

	_, err = FindUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	sys, err := SystemUser(database.DB)
	assert.NoError(t, err)

	var proj models.Project
	assert.NoError(t, database.DB.First(&proj, project.ID).Error)
	assert.Equal(t, sys.ID, proj.UserID)

	var ord models.Order
	assert.NoError(t, database.DB.First(&ord, order.ID).Error)
	assert.Equal(t, sys.ID, ord.UserID)
}

func TestDeleteUserRefusesSystemUser(t *testing.T) {
	setupTestDB()
	admin := createTestUser("sysadmin", 0, models.RoleAdmin)

	sys, err := SystemUser(database.DB)
	assert.NoError(t, err)

	assert.ErrorIs(t, DeleteUser(sys.ID, admin), ErrSystemUserDelete)
}

func TestIsSuperadminMatchesUIDOrEmail(t *testing.T) {
	cfg := &config.Config{SuperadminUID: "U123", SuperadminEmail: "boss@example.com"}

	byUID := &models.User{UID: "U123"}
	assert.True(t, IsSuperadmin(byUID, cfg))

	byEmail := &models.User{Email: "Boss@Example.COM"}
	assert.True(t, IsSuperadmin(byEmail, cfg))

	neither := &models.User{UID: "U999", Email: "worker@example.com"}
	assert.False(t, IsSuperadmin(neither, cfg))
	assert.False(t, IsSuperadmin(neither, nil))
}

func TestLeaderboardOrdersByBalanceAndSkipsSystem(t *testing.T) {
	setupTestDB()
	createTestUser("bronze", 10, models.RoleUser)
	createTestUser("gold", 100, models.RoleUser)
	createTestUser("silver", 50, models.RoleUser)

	_, err := SystemUser(database.DB)
	assert.NoError(t, err)

	users, err := Leaderboard(10)
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Equal(t, "gold", users[0].Name)
	assert.Equal(t, "silver", users[1].Name)
	assert.Equal(t, "bronze", users[2].Name)
}
