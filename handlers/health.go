package handlers

import (
	"net/http"

	"github.com/Azarenkov/aitu-web-app/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler returns the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
