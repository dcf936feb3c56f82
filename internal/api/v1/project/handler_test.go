package project_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Acidicts/Metroid-Mania/internal/api/v1/project"
	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
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

func setupRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("user", *user)
		c.Next()
	})
	project.RegisterRoutes(group)
	return r
}

func TestCreateAndListProjects(t *testing.T) {
	setupTestDB()

	user := models.User{Provider: "email", UID: "maker", Email: "maker@example.com"}
	assert.NoError(t, database.DB.Create(&user).Error)

	r := setupRouter(&user)

	body, _ := json.Marshal(project.CreateProjectRequest{
		Name:          "Tracker",
		Description:   "time tracker",
		RepositoryURL: "https://github.com/x/tracker",
		Targets:       []string{"tracker-dev"},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Status int                     `json:"status"`
		Data   project.ProjectResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, "Tracker", createResp.Data.Name)
	assert.Equal(t, models.ProjectStatusUnshipped, createResp.Data.Status)

	// A second project claiming the same target is rejected.
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Status int                       `json:"status"`
		Data   []project.ProjectResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 1)
}

func TestGetProjectNotFound(t *testing.T) {
	setupTestDB()

	user := models.User{Provider: "email", UID: "ghost", Email: "ghost@example.com"}
	assert.NoError(t, database.DB.Create(&user).Error)

	r := setupRouter(&user)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/projects/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp utils.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestDeleteProjectRequiresOwnership(t *testing.T) {
	setupTestDB()

	owner := models.User{Provider: "email", UID: "owner", Email: "owner@example.com"}
	assert.NoError(t, database.DB.Create(&owner).Error)
	stranger := models.User{Provider: "email", UID: "stranger", Email: "stranger@example.com"}
	assert.NoError(t, database.DB.Create(&stranger).Error)

	proj := models.Project{UserID: owner.ID, Name: "Mine", Status: models.ProjectStatusUnshipped}
	assert.NoError(t, database.DB.Create(&proj).Error)

	r := setupRouter(&stranger)
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/projects/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = setupRouter(&owner)
	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/projects/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEligibilityEndpoint(t *testing.T) {
	setupTestDB()

	user := models.User{Provider: "email", UID: "eligible", Email: "eligible@example.com"}
	assert.NoError(t, database.DB.Create(&user).Error)

	proj := models.Project{
		UserID:       user.ID,
		Name:         "Almost",
		Status:       models.ProjectStatusUnshipped,
		TotalSeconds: 3600,
	}
	assert.NoError(t, database.DB.Create(&proj).Error)

	r := setupRouter(&user)
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/projects/1/eligibility", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status int                         `json:"status"`
		Data   project.EligibilityResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.EligibleForShipRequest)
	assert.Equal(t, 15, resp.Data.MinutesNeeded)
	assert.Equal(t, 3600, resp.Data.UndocumentedSeconds)
}
