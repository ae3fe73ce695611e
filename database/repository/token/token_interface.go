package tokenRepo

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// TokenRepository is the persisted registry of accounts.
type TokenRepository interface {
	// Save inserts a new account. A duplicate token yields
	// repository.ErrAlreadyExists.
	Save(ctx context.Context, token *models.Token) error
	// FindAll returns up to limit accounts starting at skip, in stable
	// token order.
	FindAll(ctx context.Context, limit, skip int64) ([]models.Token, error)
	Delete(ctx context.Context, token string) error
}
