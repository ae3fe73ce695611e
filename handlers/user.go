package handlers

import (
	"errors"
	"net/http"

	"github.com/Azarenkov/aitu-web-app/models"
	"github.com/Azarenkov/aitu-web-app/services/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account registration and inspection endpoints.
type UserHandler struct {
	Data data.Service
}

func NewUserHandler(dataSvc data.Service) *UserHandler {
	return &UserHandler{Data: dataSvc}
}

// RegisterUserHandler registers a Moodle token and bootstraps its snapshots.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var token models.Token
	if err := c.ShouldBindJSON(&token); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Data.RegisterUser(c.Request.Context(), &token); err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Moodle rejected the token"})
		case errors.Is(err, data.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Token is already registered"})
		default:
			logger.Error("Failed to register user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User was created"})
}

// GetUserHandler returns the stored profile for a registered token.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	logger := getLogger(c)
	token := c.Param("token")

	user, err := h.Data.GetUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, data.ErrDataIsEmpty) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUserHandler unregisters a token and stops polling for it.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	logger := getLogger(c)
	token := c.Param("token")

	if err := h.Data.DeleteUser(c.Request.Context(), token); err != nil {
		if errors.Is(err, data.ErrDataIsEmpty) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User was deleted"})
}
