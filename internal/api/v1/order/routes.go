package order

import "github.com/gin-gonic/gin"

// RegisterRoutes wires order endpoints onto an authenticated group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	orders := r.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
	}
}
