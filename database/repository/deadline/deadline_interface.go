package deadlineRepo

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// DeadlineRepository persists the deadline snapshot per account.
type DeadlineRepository interface {
	// Save fully overwrites the stored deadline list for the token.
	Save(ctx context.Context, token string, deadlines []models.Deadline) error
	// FindByToken returns the stored deadline list, or
	// repository.ErrDataIsEmpty if none has been persisted yet.
	FindByToken(ctx context.Context, token string) ([]models.Deadline, error)
}
