package product

import "github.com/gin-gonic/gin"

// RegisterRoutes wires catalog endpoints onto an authenticated group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	r.GET("/products", h.ListProducts)
}
