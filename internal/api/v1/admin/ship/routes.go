package ship

import "github.com/gin-gonic/gin"

// RegisterRoutes wires admin ship endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	ships := r.Group("/ships")
	{
		ships.GET("", h.ListShips)
		ships.PATCH("/:id", h.UpdateShip)
	}
}
