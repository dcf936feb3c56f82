package auth

import (
	"net/http"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/services"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ExternalLoginRequest struct {
	Provider string `json:"provider" binding:"required"`
	UID      string `json:"uid" binding:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	SlackID  string `json:"slack_id"`
}

// Login authenticates a password-backed account.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := services.LoginUser(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.DisplayName(),
			"role":     user.Role,
			"currency": user.Currency,
		},
	}))
}

// LoginExternal signs a user in from an external identity provider,
// creating the account on first login.
func (h *Handler) LoginExternal(c *gin.Context) {
	var req ExternalLoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := services.LoginExternal(services.ExternalAuthProfile{
		Provider: req.Provider,
		UID:      req.UID,
		Name:     req.Name,
		Email:    req.Email,
		SlackID:  req.SlackID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.DisplayName(),
			"role":     user.Role,
			"currency": user.Currency,
		},
	}))
}

// Logout revokes the presented token.
func (h *Handler) Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	if err := services.AddToDenylist(tokenString, 72*time.Hour); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out", nil))
}
