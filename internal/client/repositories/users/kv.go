package users

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

func (r *KVRepository) LoadAll(ctx context.Context) ([]models.User, error) {
	b, err := r.store.Get(ctx, common.UsersKey)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

func (r *KVRepository) SaveAll(ctx context.Context, list []models.User) error {
	b, err := Encode(list)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, common.UsersKey, b)
}

// Encode serializes the registry. A nil list is stored as [].
func Encode(list []models.User) ([]byte, error) {
	if list == nil {
		list = []models.User{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode users: %w", err)
	}
	return b, nil
}

// Decode parses a stored registry; absent data yields an empty slice.
func Decode(b []byte) ([]models.User, error) {
	list := []models.User{}
	if len(b) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return list, nil
}
