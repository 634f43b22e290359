package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// Repository describes per-owner persistence of task lists.
type Repository interface {
	// LoadAll returns the owner's tasks in insertion order, or an empty
	// slice when nothing is stored.
	LoadAll(ctx context.Context, ownerID string) ([]models.Task, error)

	// SaveAll replaces the owner's stored list.
	SaveAll(ctx context.Context, ownerID string, items []models.Task) error
}
