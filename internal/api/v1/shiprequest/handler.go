package shiprequest

import (
	"errors"
	"net/http"
	"strconv"

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

// CreateShipRequest opens a review request for a project the caller owns.
func (h *Handler) CreateShipRequest(c *gin.Context) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return
	}

	request, err := services.RequestShip(uint(id), &user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
		case errors.Is(err, services.ErrShipRequestPending),
			errors.Is(err, services.ErrNotEligible):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Ship request created", toShipRequestResponse(request)))
}

// ListShipRequests lists the review requests for one project.
func (h *Handler) ListShipRequests(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return
	}

	projectID := uint(id)
	requests, err := services.FindShipRequests(&projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]ShipRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, toShipRequestResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}
