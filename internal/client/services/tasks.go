package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/client/state"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/google/uuid"
)

// TaskService manages the task list of the signed-in user.
//
// Mutations update memory first and then persist the owner's full list.
// A failed save is logged and reported as common.ErrUnsaved (an ErrStorage);
// memory keeps the new value. Every operation except Load and Reset fails with
// common.ErrNoSession (an ErrUnauthorized) when no owner is loaded.
type TaskService interface {
	Load(ctx context.Context, ownerID string) error
	Reset()

	Add(ctx context.Context, title string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	ToggleCompleted(ctx context.Context, id string) error
	EditTitle(ctx context.Context, id, title string) error

	Search(query string) error
	Query() string
	List() ([]models.Task, error)
	Get(id string) (*models.Task, bool)
	Counts() (total, completed int)
}

type taskService struct {
	repo tasks.Repository
	log  logging.Logger

	mu     sync.Mutex
	st     state.State
	loaded bool
}

func NewTaskService(repo tasks.Repository, log logging.Logger) TaskService {
	return &taskService{repo: repo, log: log}
}

func (s *taskService) Load(ctx context.Context, ownerID string) error {
	items, err := s.repo.LoadAll(ctx, ownerID)
	if err != nil {
		s.log.Error(ctx, "failed to load tasks", "owner", ownerID, "err", err)
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state.Load(ownerID, items)
	s.loaded = true
	return nil
}

func (s *taskService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state.State{}
	s.loaded = false
}

// apply runs fn on the current state and persists the result.
func (s *taskService) apply(ctx context.Context, fn func(state.State) state.State) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return common.ErrNoSession
	}
	s.st = fn(s.st)
	owner, master := s.st.Owner, s.st.Master
	s.mu.Unlock()

	if err := s.repo.SaveAll(ctx, owner, master); err != nil {
		s.log.Error(ctx, "failed to save tasks", "key", common.TodosKey(owner), "owner", owner, "err", err)
		return fmt.Errorf("%w: %w", common.ErrUnsaved, err)
	}
	return nil
}

func (s *taskService) owner() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", common.ErrNoSession
	}
	return s.st.Owner, nil
}

// Add creates a task. A blank title is ignored and returns (nil, nil).
func (s *taskService) Add(ctx context.Context, title string) (*models.Task, error) {
	owner, err := s.owner()
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	t := models.Task{ID: uuid.NewString(), Title: title, OwnerID: owner}
	if err := s.apply(ctx, func(st state.State) state.State { return state.Append(st, t) }); err != nil {
		return &t, err
	}
	return &t, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.apply(ctx, func(st state.State) state.State { return state.Remove(st, id) })
}

func (s *taskService) ToggleCompleted(ctx context.Context, id string) error {
	return s.apply(ctx, func(st state.State) state.State { return state.Toggle(st, id) })
}

// EditTitle replaces the title. A blank title is ignored.
func (s *taskService) EditTitle(ctx context.Context, id, title string) error {
	if _, err := s.owner(); err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	return s.apply(ctx, func(st state.State) state.State { return state.Rename(st, id, title) })
}

// Search narrows the visible list. It never touches storage.
func (s *taskService) Search(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return common.ErrNoSession
	}
	s.st = state.Filter(s.st, query)
	return nil
}

func (s *taskService) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Query
}

// List returns the visible tasks, newest first.
func (s *taskService) List() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, common.ErrNoSession
	}
	return state.Display(s.st), nil
}

func (s *taskService) Get(id string) (*models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := state.Find(s.st, id)
	if !ok {
		return nil, false
	}
	return &t, true
}

func (s *taskService) Counts() (total, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.st.Master {
		if t.Completed {
			completed++
		}
	}
	return len(s.st.Master), completed
}
