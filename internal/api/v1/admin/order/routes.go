package order

import "github.com/gin-gonic/gin"

// RegisterRoutes wires admin order endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	orders := r.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("/:id/fulfill", h.FulfillOrder)
		orders.POST("/:id/decline", h.DeclineOrder)
		orders.POST("/:id/pend", h.PendOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}
