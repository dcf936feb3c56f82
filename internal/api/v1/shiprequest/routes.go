package shiprequest

import "github.com/gin-gonic/gin"

// RegisterRoutes wires ship request endpoints onto an authenticated group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	r.POST("/projects/:id/ship_requests", h.CreateShipRequest)
	r.GET("/projects/:id/ship_requests", h.ListShipRequests)
}
