package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Acidicts/Metroid-Mania/config"
	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSystemUserDelete  = errors.New("the system user cannot be deleted")
	ErrRecipientNotFound = errors.New("recipient user not found")
)

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

func invalidateUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(userID))
	}
}

// FindUsers retrieves a paginated list of users, excluding the system
// placeholder.
func FindUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := database.DB.Model(&models.User{}).
		Where("NOT (provider = ? AND uid = ?)", models.SystemProvider, models.SystemUID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// IsSuperadmin applies the environment-derived policy: a user matching the
// configured uid or email is superadmin regardless of the stored role.
func IsSuperadmin(user *models.User, cfg *config.Config) bool {
	if cfg == nil {
		return false
	}
	if cfg.SuperadminUID != "" && user.UID == cfg.SuperadminUID {
		return true
	}
	return cfg.SuperadminEmail != "" && user.Email != "" &&
		strings.EqualFold(user.Email, cfg.SuperadminEmail)
}

// AdjustBalance applies an admin correction to a user's balance and records
// it in the audit trail.
func AdjustBalance(userID uint, delta float64, admin *models.User, reason string) (*models.User, error) {
	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		err := tx.Model(&user).Updates(map[string]interface{}{
			"currency": gorm.Expr("currency + ?", delta),
			"version":  gorm.Expr("version + 1"),
		}).Error
		if err != nil {
			return err
		}

		return RecordAudit(tx, models.AuditAdjustBalance, &admin.ID, nil, map[string]interface{}{
			"target_user_id": user.ID,
			"delta":          delta,
			"reason":         reason,
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateUserCache(userID)
	database.DB.First(&user, userID)
	return &user, nil
}

// SystemUser returns the placeholder that owns records of deleted users,
// creating it lazily.
func SystemUser(tx *gorm.DB) (*models.User, error) {
	var sys models.User
	err := tx.Where("provider = ? AND uid = ?", models.SystemProvider, models.SystemUID).First(&sys).Error
	if err == nil {
		return &sys, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sys = models.User{
		Provider: models.SystemProvider,
		UID:      models.SystemUID,
		Email:    "deleted@example.com",
		Name:     "Deleted User",
		Role:     models.RoleUser,
	}
	if err := tx.Create(&sys).Error; err != nil {
		return nil, err
	}
	return &sys, nil
}

// DeleteUser removes a user after reassigning all of their records to the
// system placeholder, so no foreign key ever dangles. The placeholder itself
// is undeletable.
func DeleteUser(userID uint, admin *models.User) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.IsSystem() {
			return ErrSystemUserDelete
		}

		sys, err := SystemUser(tx)
		if err != nil {
			return err
		}

		reassignments := []struct {
			model  interface{}
			column string
		}{
			{&models.Project{}, "user_id"},
			{&models.Order{}, "user_id"},
			{&models.Ship{}, "user_id"},
			{&models.ShipRequest{}, "user_id"},
			{&models.ShipRequest{}, "processed_by_id"},
			{&models.Audit{}, "user_id"},
		}
		for _, r := range reassignments {
			err := tx.Model(r.model).
				Where(r.column+" = ?", userID).
				Update(r.column, sys.ID).Error
			if err != nil {
				return err
			}
		}

		err = RecordAudit(tx, models.AuditDeleteUser, &admin.ID, nil, map[string]interface{}{
			"deleted_user_id": user.ID,
			"reassigned_to":   sys.ID,
		})
		if err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	invalidateUserCache(userID)
	return nil
}

// Leaderboard returns the top users by balance, excluding the system
// placeholder.
func Leaderboard(limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []models.User
	err := database.DB.
		Where("NOT (provider = ? AND uid = ?)", models.SystemProvider, models.SystemUID).
		Order("currency desc").Limit(limit).Find(&users).Error
	return users, err
}
