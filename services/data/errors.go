package data

import (
	"errors"

	"github.com/Azarenkov/aitu-web-app/database/repository"
)

var (
	// ErrInvalidToken means Moodle rejected the webservice token.
	ErrInvalidToken = errors.New("moodle rejected the token")

	// ErrUserAlreadyExists means the token is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrDataIsEmpty re-exports the repository sentinel so pipeline code can
	// match it without importing the persistence layer.
	ErrDataIsEmpty = repository.ErrDataIsEmpty
)
