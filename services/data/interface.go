package data

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// Service owns the persisted per-account snapshots: reads return the last
// stored state, updates fetch from Moodle and fully overwrite it.
type Service interface {
	// RegisterUser validates the token against Moodle, persists the account
	// and bootstraps all five snapshot kinds. Fails with ErrInvalidToken or
	// ErrUserAlreadyExists.
	RegisterUser(ctx context.Context, token *models.Token) error
	DeleteUser(ctx context.Context, token string) error
	// FindAllTokens returns one page of registered accounts.
	FindAllTokens(ctx context.Context, limit, skip int64) ([]models.Token, error)

	GetUser(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, token string) (*models.User, error)

	GetCourses(ctx context.Context, token string) ([]models.Course, error)
	UpdateCourses(ctx context.Context, token string, user *models.User) ([]models.Course, error)

	GetGrades(ctx context.Context, token string) ([]models.Grade, error)
	UpdateGrades(ctx context.Context, token string, user *models.User, courses []models.Course) error

	GetGradesOverview(ctx context.Context, token string) ([]models.GradeOverview, error)
	// FetchGradesOverview fetches, annotates and sorts the external overview
	// without persisting it.
	FetchGradesOverview(ctx context.Context, token string, courses []models.Course) (*models.GradesOverview, error)
	UpdateGradesOverview(ctx context.Context, token string, courses []models.Course) error

	GetDeadlines(ctx context.Context, token string) ([]models.Deadline, error)
	UpdateDeadlines(ctx context.Context, token string, courses []models.Course) error

	// FetchAndUpdateData refreshes all five snapshot kinds from Moodle
	// without producing notifications.
	FetchAndUpdateData(ctx context.Context, token string) error
}
