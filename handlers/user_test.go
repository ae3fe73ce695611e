package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Azarenkov/aitu-web-app/models"
	"github.com/Azarenkov/aitu-web-app/services/data"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDataService overrides only the methods the handlers touch.
type stubDataService struct {
	data.Service

	registerErr error
	registered  *models.Token

	user   *models.User
	getErr error

	deleteErr error
}

func (s *stubDataService) RegisterUser(_ context.Context, token *models.Token) error {
	s.registered = token
	return s.registerErr
}

func (s *stubDataService) GetUser(_ context.Context, _ string) (*models.User, error) {
	return s.user, s.getErr
}

func (s *stubDataService) DeleteUser(_ context.Context, _ string) error {
	return s.deleteErr
}

func newTestRouter(svc data.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(svc)

	router := gin.New()
	router.POST("/api/users/register", h.RegisterUserHandler)
	router.GET("/api/users/:token", h.GetUserHandler)
	router.DELETE("/api/users/:token", h.DeleteUserHandler)
	return router
}

func TestRegisterUserHandlerCreated(t *testing.T) {
	svc := &stubDataService{}
	router := newTestRouter(svc)

	body := `{"token":"T1","device_token":"D1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.registered)
	assert.Equal(t, "T1", svc.registered.Token)
	assert.Equal(t, "D1", svc.registered.DeviceToken)
}

func TestRegisterUserHandlerMissingToken(t *testing.T) {
	router := newTestRouter(&stubDataService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterUserHandlerInvalidToken(t *testing.T) {
	svc := &stubDataService{
		registerErr: fmt.Errorf("%w: invalidtoken", data.ErrInvalidToken),
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(`{"token":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Moodle rejected the token")
}

func TestRegisterUserHandlerDuplicate(t *testing.T) {
	svc := &stubDataService{registerErr: data.ErrUserAlreadyExists}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(`{"token":"T1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterUserHandlerInternalError(t *testing.T) {
	svc := &stubDataService{registerErr: errors.New("mongo down")}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", strings.NewReader(`{"token":"T1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUserHandlerFound(t *testing.T) {
	svc := &stubDataService{
		user: &models.User{UserID: 7, Username: "jdoe", FullName: "John Doe"},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/T1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John Doe")
}

func TestGetUserHandlerNotFound(t *testing.T) {
	svc := &stubDataService{getErr: data.ErrDataIsEmpty}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	router := newTestRouter(&stubDataService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/T1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteUserHandlerNotFound(t *testing.T) {
	router := newTestRouter(&stubDataService{deleteErr: data.ErrDataIsEmpty})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
