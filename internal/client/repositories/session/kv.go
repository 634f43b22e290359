package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// ErrMalformed is returned by Load when the stored marker cannot be decoded.
var ErrMalformed = errors.New("malformed session marker")

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Load(ctx context.Context) (*models.User, error) {
	b, err := r.store.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	return &u, nil
}

func (r *KVRepository) Save(ctx context.Context, u *models.User) error {
	b, err := Encode(u)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, common.CurrentUserKey, b)
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, common.CurrentUserKey)
}

// Encode serializes the marker the same way Save does.
func Encode(u *models.User) ([]byte, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return b, nil
}
