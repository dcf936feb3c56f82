package leaderboard

import (
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

type entry struct {
	Rank     int     `json:"rank"`
	UserID   uint    `json:"user_id"`
	Name     string  `json:"name"`
	Currency float64 `json:"currency"`
}

// Leaderboard ranks users by credit balance.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	users, err := services.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]entry, 0, len(users))
	for i := range users {
		items = append(items, toEntry(i+1, &users[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}

func toEntry(rank int, u *models.User) entry {
	return entry{
		Rank:     rank,
		UserID:   u.ID,
		Name:     u.DisplayName(),
		Currency: u.Currency,
	}
}

// RegisterRoutes wires the leaderboard endpoint onto an authenticated group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()
	r.GET("/leaderboard", h.Leaderboard)
}
