package api

import (
	"github.com/Acidicts/Metroid-Mania/config"
	adminAudit "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/audit"
	adminOrder "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/order"
	adminProduct "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/product"
	adminProject "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/project"
	adminShip "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/ship"
	adminShipRequest "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/shiprequest"
	adminUser "github.com/Acidicts/Metroid-Mania/internal/api/v1/admin/user"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/auth"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/devlog"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/leaderboard"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/order"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/product"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/project"
	"github.com/Acidicts/Metroid-Mania/internal/api/v1/shiprequest"
	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			project.RegisterRoutes(authorized)
			devlog.RegisterRoutes(authorized)
			shiprequest.RegisterRoutes(authorized)
			order.RegisterRoutes(authorized)
			product.RegisterRoutes(authorized)
			leaderboard.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminProject.RegisterRoutes(admin)
			adminShipRequest.RegisterRoutes(admin)
			adminShip.RegisterRoutes(admin)
			adminOrder.RegisterRoutes(admin)
			adminProduct.RegisterRoutes(admin)
			adminUser.RegisterRoutes(admin, cfg)
			adminAudit.RegisterRoutes(admin)
		}
	}

	return router, nil
}
