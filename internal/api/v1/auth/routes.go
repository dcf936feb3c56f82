package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup) {
	h := NewHandler()

	group := rg.Group("/auth")
	{
		group.POST("/login", h.Login)
		group.POST("/external", h.LoginExternal)
		group.POST("/logout", h.Logout)
	}
}
