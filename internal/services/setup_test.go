package services

import (
	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(
		&models.Audit{},
		&models.Order{},
		&models.Product{},
		&models.Ship{},
		&models.ShipRequest{},
		&models.Devlog{},
		&models.ProjectTarget{},
		&models.Project{},
		&models.User{},
	)
	if err := database.Migrate(db); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func createTestUser(uid string, currency float64, role models.Role) *models.User {
	user := &models.User{
		Provider: "email",
		UID:      uid,
		Email:    uid + "@example.com",
		Name:     uid,
		Currency: currency,
		Role:     role,
	}
	if err := database.DB.Create(user).Error; err != nil {
		panic(err)
	}
	return user
}

func createTestProject(userID uint, totalSeconds int) *models.Project {
	project := &models.Project{
		UserID:       userID,
		Name:         "Test Project",
		Status:       models.ProjectStatusUnshipped,
		TotalSeconds: totalSeconds,
	}
	if err := database.DB.Create(project).Error; err != nil {
		panic(err)
	}
	return project
}

func createTestProduct(name string, costCredits float64) *models.Product {
	product := &models.Product{
		Name:        name,
		CostCredits: &costCredits,
	}
	if err := database.DB.Create(product).Error; err != nil {
		panic(err)
	}
	return product
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
