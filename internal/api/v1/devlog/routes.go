package devlog

import "github.com/gin-gonic/gin"

// RegisterRoutes wires devlog endpoints onto an authenticated group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	r.GET("/projects/:id/devlogs", h.ListDevlogs)
	r.POST("/projects/:id/devlogs", h.CreateDevlog)
	r.PUT("/devlogs/:id", h.UpdateDevlog)
	r.DELETE("/devlogs/:id", h.DeleteDevlog)
}
