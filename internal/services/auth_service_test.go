package services

import (
	"testing"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginUser(t *testing.T) {
	setupTestDB()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := models.User{
		Provider: "email",
		UID:      "login@example.com",
		Email:    "login@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	assert.NoError(t, database.DB.Create(&user).Error)

	token, logged, err := LoginUser("login@example.com", "hunter2")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = LoginUser("login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = LoginUser("nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUserRejectsPasswordlessAccount(t *testing.T) {
	setupTestDB()
	createTestUser("external-only", 0, models.RoleUser)

	_, _, err := LoginUser("external-only@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginExternalUpsertsUser(t *testing.T) {
	setupTestDB()

	profile := ExternalAuthProfile{
		Provider: "slack",
		UID:      "U777",
		Name:     "New Person",
		Email:    "new@example.com",
		SlackID:  "U777",
	}

	token, created, err := LoginExternal(profile)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, created.Role)

	// Second login finds the same account instead of creating another.
	_, again, err := LoginExternal(profile)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	database.DB.Model(&models.User{}).Where("provider = ? AND uid = ?", "slack", "U777").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestTokenDenylist(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	denied, err := IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.False(t, denied)

	assert.NoError(t, AddToDenylist("some-token", time.Hour))

	denied, err = IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.True(t, denied)

	// Expiry clears the entry.
	mr.FastForward(2 * time.Hour)
	denied, err = IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.False(t, denied)
}
