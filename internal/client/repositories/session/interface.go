package session

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type Repository interface {
	// Load returns the stored user, nil when absent, or ErrMalformed.
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}
