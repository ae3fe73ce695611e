package routes

import (
	"time"

	"github.com/Azarenkov/aitu-web-app/handlers"
	"github.com/Azarenkov/aitu-web-app/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints.
func RegisterRoutes(r *gin.Engine, userHandler *handlers.UserHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api/users")
	api.Use(middleware.AdminAuthMiddleware())
	{
		api.POST("/register", userHandler.RegisterUserHandler)
		api.GET("/:token", userHandler.GetUserHandler)
		api.DELETE("/:token", userHandler.DeleteUserHandler)
	}
}
