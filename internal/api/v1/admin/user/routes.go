package user

import (
	"github.com/Acidicts/Metroid-Mania/config"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires admin user endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup, cfg *config.Config) {
	h := NewHandler(cfg)

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("/:id/adjust_balance", h.AdjustBalance)
		users.DELETE("/:id", h.DeleteUser)
	}
}
