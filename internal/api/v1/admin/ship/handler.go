package ship

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

type updateShipRequest struct {
	DevloggedSeconds *int       `json:"devlogged_seconds"`
	CreditsAwarded   *float64   `json:"credits_awarded"`
	ShippedAt        *time.Time `json:"shipped_at"`
	CreditsPerHour   *float64   `json:"credits_per_hour"`
	Recalculate      bool       `json:"recalculate"`
}

type shipItem struct {
	ID               uint      `json:"id"`
	ProjectID        *uint     `json:"project_id"`
	ProjectName      string    `json:"project_name,omitempty"`
	UserID           uint      `json:"user_id"`
	ShippedAt        time.Time `json:"shipped_at"`
	DevloggedSeconds int       `json:"devlogged_seconds"`
	CreditsAwarded   float64   `json:"credits_awarded"`
}

func toShipItem(s *models.Ship) shipItem {
	item := shipItem{
		ID:               s.ID,
		ProjectID:        s.ProjectID,
		UserID:           s.UserID,
		ShippedAt:        s.ShippedAt,
		DevloggedSeconds: s.DevloggedSeconds,
		CreditsAwarded:   s.CreditsAwarded,
	}
	if s.Project != nil {
		item.ProjectName = s.Project.Name
	}
	return item
}

// ListShips returns recent ship events, newest first.
func (h *Handler) ListShips(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	ships, err := services.FindShips(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]shipItem, 0, len(ships))
	for i := range ships {
		items = append(items, toShipItem(&ships[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}

// UpdateShip corrects a recorded ship. Changing the award books a
// compensating balance delta against the project owner.
func (h *Handler) UpdateShip(c *gin.Context) {
	admin := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return
	}

	var req updateShipRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ship, err := services.UpdateShip(uint(id), &admin, services.ShipUpdate{
		DevloggedSeconds: req.DevloggedSeconds,
		CreditsAwarded:   req.CreditsAwarded,
		ShippedAt:        req.ShippedAt,
		CreditsPerHour:   req.CreditsPerHour,
		Recalculate:      req.Recalculate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShipNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Ship not found"))
		case errors.Is(err, services.ErrProjectNotFound):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Ship updated", toShipItem(ship)))
}
