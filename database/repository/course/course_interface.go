package courseRepo

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// CourseRepository persists the enrolled-course snapshot per account.
type CourseRepository interface {
	// Save fully overwrites the stored course list for the token.
	Save(ctx context.Context, token string, courses []models.Course) error
	// FindByToken returns the stored course list, or
	// repository.ErrDataIsEmpty if none has been persisted yet.
	FindByToken(ctx context.Context, token string) ([]models.Course, error)
}
