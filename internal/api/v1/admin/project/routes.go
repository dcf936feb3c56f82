package project

import "github.com/gin-gonic/gin"

// RegisterRoutes wires admin project endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	projects := r.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("/bulk_ship", h.BulkShip)
		projects.POST("/:id/ship", h.ShipProject)
		projects.PUT("/:id/time", h.SetTime)
	}
}
