package project

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"
	"github.com/Acidicts/Metroid-Mania/internal/services"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func currentUser(c *gin.Context) models.User {
	val, _ := c.Get("user")
	user, _ := val.(models.User)
	return user
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

type shipProjectRequest struct {
	CreditsPerHour *float64 `json:"credits_per_hour"`
}

type bulkShipRequest struct {
	ProjectIDs     []uint  `json:"project_ids" binding:"required,min=1"`
	CreditsPerHour float64 `json:"credits_per_hour" binding:"required,gt=0"`
}

type setTimeRequest struct {
	TotalSeconds int `json:"total_seconds" binding:"required,gt=0"`
}

type projectListItem struct {
	ID            uint       `json:"id"`
	UserID        uint       `json:"user_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	Shipped       bool       `json:"shipped"`
	ShippedAt     *time.Time `json:"shipped_at"`
	TotalSeconds  int        `json:"total_seconds"`
	ShipRequested *time.Time `json:"ship_requested_at"`
}

type shipResponse struct {
	ID               uint      `json:"id"`
	ProjectID        *uint     `json:"project_id"`
	UserID           uint      `json:"user_id"`
	ShippedAt        time.Time `json:"shipped_at"`
	DevloggedSeconds int       `json:"devlogged_seconds"`
	CreditsAwarded   float64   `json:"credits_awarded"`
}

func toShipResponse(s *models.Ship) shipResponse {
	return shipResponse{
		ID:               s.ID,
		ProjectID:        s.ProjectID,
		UserID:           s.UserID,
		ShippedAt:        s.ShippedAt,
		DevloggedSeconds: s.DevloggedSeconds,
		CreditsAwarded:   s.CreditsAwarded,
	}
}

// ListProjects pages through every project.
func (h *Handler) ListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	projects, total, err := services.FindProjects(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]projectListItem, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		items = append(items, projectListItem{
			ID:            p.ID,
			UserID:        p.UserID,
			Name:          p.Name,
			Status:        string(p.Status),
			Shipped:       p.Shipped,
			ShippedAt:     p.ShippedAt,
			TotalSeconds:  p.TotalSeconds,
			ShipRequested: p.ShipRequestedAt,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", gin.H{
		"projects": items,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}))
}

// ShipProject ships one pending project directly.
func (h *Handler) ShipProject(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req shipProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	ship, err := services.AdminShip(id, &admin, req.CreditsPerHour)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
		case errors.Is(err, services.ErrNotEligible):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Project shipped", toShipResponse(ship)))
}

// BulkShip ships a batch of projects at a shared rate. Ids that no longer
// resolve to a project are skipped; the ships that went through are returned.
func (h *Handler) BulkShip(c *gin.Context) {
	admin := currentUser(c)

	var req bulkShipRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ships, err := services.BulkShip(req.ProjectIDs, &admin, req.CreditsPerHour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]shipResponse, 0, len(ships))
	for _, s := range ships {
		items = append(items, toShipResponse(s))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Bulk ship complete", gin.H{
		"shipped": items,
		"count":   len(items),
	}))
}

// SetTime overwrites a project's externally tracked total.
func (h *Handler) SetTime(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req setTimeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.SetTotalSeconds(id, req.TotalSeconds); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tracked time updated", nil))
}
