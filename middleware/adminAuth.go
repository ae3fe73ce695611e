package middleware

import (
	"net/http"
	"strings"

	"github.com/Azarenkov/aitu-web-app/config"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the account management endpoints with the
// static admin bearer token from config. No token configured means the
// surface is open (development only).
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminToken := config.AppConfig.AdminToken
		if adminToken == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		if strings.TrimPrefix(authHeader, "Bearer ") != adminToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Next()
	}
}
