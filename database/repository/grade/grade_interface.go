package gradeRepo

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// GradeRepository persists the grade and grade-overview snapshots per account.
type GradeRepository interface {
	// SaveGrades fully overwrites the stored grade list for the token.
	SaveGrades(ctx context.Context, token string, grades []models.Grade) error
	// FindGradesByToken returns the stored grade list, or
	// repository.ErrDataIsEmpty if none has been persisted yet.
	FindGradesByToken(ctx context.Context, token string) ([]models.Grade, error)
	// SaveGradesOverview fully overwrites the stored overview for the token.
	SaveGradesOverview(ctx context.Context, token string, overview []models.GradeOverview) error
	// FindGradesOverviewByToken returns the stored overview, or
	// repository.ErrDataIsEmpty if none has been persisted yet.
	FindGradesOverviewByToken(ctx context.Context, token string) ([]models.GradeOverview, error)
}
