package userRepo

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// UserRepository persists the user profile snapshot per account.
type UserRepository interface {
	// Save fully overwrites the stored profile for the token.
	Save(ctx context.Context, token string, user *models.User) error
	// FindByToken returns the stored profile, or repository.ErrDataIsEmpty
	// if none has been persisted yet.
	FindByToken(ctx context.Context, token string) (*models.User, error)
}
