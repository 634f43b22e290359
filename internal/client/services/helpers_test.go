package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// flakyStore wraps a MemoryStore and fails the operations switched on.
type flakyStore struct {
	*kv.MemoryStore

	mu      sync.Mutex
	failGet bool
	failSet bool
	failRm  bool
	failKey string
	sets    int
	setKeys []string
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: kv.NewMemoryStore()}
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, errDiskFull
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSet || key == f.failKey
	f.sets++
	f.setKeys = append(f.setKeys, key)
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.MemoryStore.Set(ctx, key, value)
}

// SetMany hides the embedded batch method so writes go through Set.
func (f *flakyStore) SetMany(ctx context.Context, entries []kv.Entry) error {
	for _, e := range entries {
		if err := f.Set(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func (f *flakyStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failRm
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.MemoryStore.Remove(ctx, key)
}

func (f *flakyStore) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

type fixture struct {
	store   *flakyStore
	tasks   TaskService
	account AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFlakyStore()
	ts := NewTaskService(tasks.NewKVRepository(store), logging.Nop())
	return &fixture{
		store:   store,
		tasks:   ts,
		account: NewAccountService(store, ts, logging.Nop()),
	}
}

// signedIn returns a fixture with alice signed up and signed in.
func signedIn(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	_, err := f.account.SignUp(context.Background(), "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)
	return f
}

func titles(list []models.Task) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Title)
	}
	return out
}
