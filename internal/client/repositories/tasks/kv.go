package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) LoadAll(ctx context.Context, ownerID string) ([]models.Task, error) {
	key := common.TodosKey(ownerID)

	b, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	items := []models.Task{}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}

func (r *KVRepository) SaveAll(ctx context.Context, ownerID string, items []models.Task) error {
	if items == nil {
		items = []models.Task{}
	}
	key := common.TodosKey(ownerID)

	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, b)
}
