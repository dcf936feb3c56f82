package shiprequest

import "github.com/gin-gonic/gin"

// RegisterRoutes wires admin ship request endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	requests := r.Group("/ship_requests")
	{
		requests.GET("", h.ListShipRequests)
		requests.POST("/:id/approve", h.ApproveShipRequest)
		requests.POST("/:id/reject", h.RejectShipRequest)
	}
}
