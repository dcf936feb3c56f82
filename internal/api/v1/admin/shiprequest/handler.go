package shiprequest

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

type approveRequest struct {
	CreditsPerHour  *float64 `json:"credits_per_hour"`
	RecipientUserID *uint    `json:"recipient_user_id"`
}

type shipRequestItem struct {
	ID               uint       `json:"id"`
	ProjectID        *uint      `json:"project_id"`
	ProjectName      string     `json:"project_name,omitempty"`
	UserID           uint       `json:"user_id"`
	Status           string     `json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	ApprovedAt       *time.Time `json:"approved_at"`
	ProcessedByID    *uint      `json:"processed_by_id"`
	DevloggedSeconds int        `json:"devlogged_seconds"`
	CreditsPerHour   *float64   `json:"credits_per_hour"`
	CreditsAwarded   *float64   `json:"credits_awarded"`
}

func toShipRequestItem(r *models.ShipRequest) shipRequestItem {
	item := shipRequestItem{
		ID:               r.ID,
		ProjectID:        r.ProjectID,
		UserID:           r.UserID,
		Status:           string(r.Status),
		RequestedAt:      r.RequestedAt,
		ApprovedAt:       r.ApprovedAt,
		ProcessedByID:    r.ProcessedByID,
		DevloggedSeconds: r.DevloggedSeconds,
		CreditsPerHour:   r.CreditsPerHour,
		CreditsAwarded:   r.CreditsAwarded,
	}
	if r.Project != nil {
		item.ProjectName = r.Project.Name
	}
	return item
}

// ListShipRequests returns every review request, optionally restricted to one
// project via ?project_id.
func (h *Handler) ListShipRequests(c *gin.Context) {
	var projectID *uint
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid project_id"))
			return
		}
		v := uint(id)
		projectID = &v
	}

	requests, err := services.FindShipRequests(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]shipRequestItem, 0, len(requests))
	for i := range requests {
		items = append(items, toShipRequestItem(&requests[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}

// ApproveShipRequest approves a pending request, ships the project, and
// credits the recipient in one transaction.
func (h *Handler) ApproveShipRequest(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	ship, err := services.ApproveShipRequest(id, &admin, req.CreditsPerHour, req.RecipientUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShipRequestNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Ship request not found"))
		case errors.Is(err, services.ErrShipRequestNotPending),
			errors.Is(err, services.ErrProjectNotFound),
			errors.Is(err, services.ErrRecipientNotFound):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Ship request approved", gin.H{
		"ship_id":         ship.ID,
		"credits_awarded": ship.CreditsAwarded,
	}))
}

// RejectShipRequest rejects a pending request and releases its devlogs.
func (h *Handler) RejectShipRequest(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := services.RejectShipRequest(id, &admin); err != nil {
		switch {
		case errors.Is(err, services.ErrShipRequestNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Ship request not found"))
		case errors.Is(err, services.ErrShipRequestNotPending):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Ship request rejected", nil))
}
