package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Acidicts/Metroid-Mania/config"
	"github.com/Acidicts/Metroid-Mania/internal/models"
	"github.com/Acidicts/Metroid-Mania/internal/services"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
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

type adjustBalanceRequest struct {
	Delta  float64 `json:"delta" binding:"required"`
	Reason string  `json:"reason" binding:"required"`
}

type userItem struct {
	ID       uint    `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	SlackID  string  `json:"slack_id,omitempty"`
	Role     string  `json:"role"`
	Currency float64 `json:"currency"`
}

func toUserItem(u *models.User) userItem {
	return userItem{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.DisplayName(),
		SlackID:  u.SlackID,
		Role:     string(u.Role),
		Currency: u.Currency,
	}
}

// ListUsers pages through every non-system account.
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := services.FindUsers(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]userItem, 0, len(users))
	for i := range users {
		items = append(items, toUserItem(&users[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", gin.H{
		"users": items,
		"total": total,
		"page":  page,
		"limit": limit,
	}))
}

// AdjustBalance applies a manual credit delta to a user.
func (h *Handler) AdjustBalance(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req adjustBalanceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := services.AdjustBalance(id, req.Delta, &admin, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance adjusted", toUserItem(user)))
}

// DeleteUser removes an account, reassigning its records to the system user.
// Restricted to the configured superadmin.
func (h *Handler) DeleteUser(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if !services.IsSuperadmin(&admin, h.cfg) {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Superadmin access required"))
		return
	}

	if err := services.DeleteUser(id, &admin); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		case errors.Is(err, services.ErrSystemUserDelete):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User deleted", nil))
}
