package product

import "github.com/gin-gonic/gin"

// RegisterRoutes wires admin catalog endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}
