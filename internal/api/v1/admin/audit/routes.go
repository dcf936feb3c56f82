package audit

import "github.com/gin-gonic/gin"

// RegisterRoutes wires audit trail endpoints onto an admin group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	audits := r.Group("/audits")
	{
		audits.GET("", h.ListAudits)
		audits.GET("/export", h.ExportAudits)
	}
}
