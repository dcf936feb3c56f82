package services

import (
	"errors"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginUser authenticates a password-backed account (the seeded admin) and
// issues a token.
func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.Password == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// ExternalAuthProfile is what the identity provider hands us on sign-in.
type ExternalAuthProfile struct {
	Provider string
	UID      string
	Name     string
	Email    string
	SlackID  string
}

// LoginExternal upserts a user from an external identity and issues a token.
// First login creates the account with the default role.
func LoginExternal(profile ExternalAuthProfile) (string, *models.User, error) {
	var user models.User
	err := database.DB.Where("provider = ? AND uid = ?", profile.Provider, profile.UID).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, err
		}
		user = models.User{
			Provider: profile.Provider,
			UID:      profile.UID,
			Name:     profile.Name,
			Email:    profile.Email,
			SlackID:  profile.SlackID,
			Role:     models.RoleUser,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return "", nil, err
		}
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}
