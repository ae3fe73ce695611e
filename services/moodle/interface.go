package moodle

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// DataProvider is read-only access to the external Moodle instance, keyed by
// the account's webservice token.
type DataProvider interface {
	ValidateToken(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (*models.User, error)
	GetCourses(ctx context.Context, token string, userID int64) ([]models.Course, error)
	GetGradesByCourse(ctx context.Context, token string, userID, courseID int64) (*models.UserGrades, error)
	GetGradesOverview(ctx context.Context, token string) (*models.GradesOverview, error)
	GetDeadlinesByCourse(ctx context.Context, token string, courseID int64) (*models.Events, error)
}
