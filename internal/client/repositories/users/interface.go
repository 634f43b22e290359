package users

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// Repository loads and stores the whole registry at once.
type Repository interface {
	// LoadAll returns the registry, or an empty slice when nothing is stored.
	LoadAll(ctx context.Context) ([]models.User, error)

	// SaveAll replaces the stored registry.
	SaveAll(ctx context.Context, list []models.User) error
}
