package configs

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/api"
	"github.com/quochao170402/cekspek/auth"
	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/middleware"
)

type Dependencies struct {
	Catalog     *catalog.Service
	Admin       auth.Admin
	Tokens      *auth.Manager
	Logger      *zap.Logger
	CORSOrigins []string
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(deps.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		api.RegisterBrandRoutes(v1.Group("/brands"), deps.Catalog)
		api.RegisterPhoneRoutes(v1.Group("/phones"), deps.Catalog)
		api.RegisterBrowseRoutes(v1, deps.Catalog)
		api.RegisterAuthRoutes(v1.Group("/auth"), api.NewAuthHandler(deps.Admin, deps.Tokens, deps.Logger))

		admin := v1.Group("/admin", middleware.AuthMiddleware(deps.Tokens), middleware.RequireRole(auth.RoleAdmin))
		{
			api.RegisterAdminRoutes(admin, deps.Catalog)
			api.RegisterAdminBrandRoutes(admin.Group("/brands"), deps.Catalog)
			api.RegisterAdminPhoneRoutes(admin.Group("/phones"), deps.Catalog)
			api.RegisterAdminReviewRoutes(admin.Group("/reviews"), deps.Catalog)
		}
	}
}

func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
