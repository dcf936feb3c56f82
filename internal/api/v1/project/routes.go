package project

import "github.com/gin-gonic/gin"

// RegisterRoutes wires project endpoints onto an authenticated group.
func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	projects := r.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.GET("/:id/eligibility", h.Eligibility)
	}
}
