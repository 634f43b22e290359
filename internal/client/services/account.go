package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/google/uuid"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

// AccountService defines the account operations used by the CLI.
//
// Contract:
//   - SignUp: validate, register a new user and sign them in.
//   - Login: sign in an existing user by email and password.
//   - Logout: end the session and forget the loaded tasks.
//   - RestoreSession: resume the session recorded by the last run.
//   - Current: the signed-in user or nil.
//   - Ping / Close: storage liveness and shutdown.
type AccountService interface {
	SignUp(ctx context.Context, email, username, password, confirmPassword string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*models.User, error)
	Current() *models.User
	Ping(ctx context.Context) error
	Close() error
}

type accountService struct {
	store    kv.Store
	users    users.Repository
	sessions session.Repository
	tasks    TaskService
	log      logging.Logger

	mu      sync.Mutex
	current *models.User
}

// NewAccountService wires the account flow to store. tasks is loaded on
// every successful sign in and reset on logout.
func NewAccountService(store kv.Store, tasks TaskService, log logging.Logger) AccountService {
	return &accountService{
		store:    store,
		users:    users.NewKVRepository(store),
		sessions: session.NewKVRepository(store),
		tasks:    tasks,
		log:      log,
	}
}

func (a *accountService) storageErr(ctx context.Context, msg, key string, err error) error {
	a.log.Error(ctx, msg, "key", key, "err", err)
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}

func (a *accountService) SignUp(ctx context.Context, email, username, password, confirmPassword string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	switch {
	case email == "" || username == "" || password == "" || confirmPassword == "":
		return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	case password != confirmPassword:
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, MinPasswordLength)
	}

	registry, err := a.users.LoadAll(ctx)
	if err != nil {
		return nil, a.storageErr(ctx, "failed to load users", common.UsersKey, err)
	}
	for _, u := range registry {
		if u.Email == email {
			return nil, fmt.Errorf("email %w", common.ErrConflict)
		}
		if u.Username == username {
			return nil, fmt.Errorf("username %w", common.ErrConflict)
		}
	}

	u := models.User{ID: uuid.NewString(), Email: email, Username: username, Password: password}

	usersRaw, err := users.Encode(append(registry, u))
	if err != nil {
		return nil, err
	}
	markerRaw, err := session.Encode(&u)
	if err != nil {
		return nil, err
	}

	return a.signIn(ctx, &u, func() error {
		// users goes first: a marker must never name an unregistered user.
		err := kv.SetMany(ctx, a.store,
			kv.Entry{Key: common.UsersKey, Value: usersRaw},
			kv.Entry{Key: common.CurrentUserKey, Value: markerRaw},
		)
		if err != nil {
			return a.storageErr(ctx, "failed to save new user", common.UsersKey, err)
		}
		a.log.Info(ctx, "user signed up", "user", u.ID)
		return nil
	})
}

func (a *accountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	registry, err := a.users.LoadAll(ctx)
	if err != nil {
		return nil, a.storageErr(ctx, "failed to load users", common.UsersKey, err)
	}
	if len(registry) == 0 {
		return nil, fmt.Errorf("%w: no users registered", common.ErrNotFound)
	}

	found := findUser(registry, func(u models.User) bool { return u.Email == email })
	if found == nil {
		return nil, fmt.Errorf("%w: user not found", common.ErrNotFound)
	}
	if found.Password != password {
		return nil, fmt.Errorf("%w: incorrect password", common.ErrUnauthorized)
	}

	return a.signIn(ctx, found, func() error {
		if err := a.sessions.Save(ctx, found); err != nil {
			return a.storageErr(ctx, "failed to save session", common.CurrentUserKey, err)
		}
		a.log.Info(ctx, "user logged in", "user", found.ID)
		return nil
	})
}

func findUser(list []models.User, match func(models.User) bool) *models.User {
	for i := range list {
		if match(list[i]) {
			return &list[i]
		}
	}
	return nil
}

// signIn loads u's tasks, then runs persist (may be nil), and only then
// sets the session. On any failure the session is left empty and
// (nil, err) is returned.
func (a *accountService) signIn(ctx context.Context, u *models.User, persist func() error) (*models.User, error) {
	if err := a.tasks.Load(ctx, u.ID); err != nil {
		a.clearSession()
		return nil, err
	}
	if persist != nil {
		if err := persist(); err != nil {
			a.clearSession()
			return nil, err
		}
	}

	a.mu.Lock()
	a.current = u
	a.mu.Unlock()
	return u, nil
}

func (a *accountService) clearSession() {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	a.tasks.Reset()
}

func (a *accountService) Logout(ctx context.Context) error {
	prev := a.Current()
	a.clearSession()

	if err := a.sessions.Clear(ctx); err != nil {
		return a.storageErr(ctx, "failed to remove session", common.CurrentUserKey, err)
	}
	if prev != nil {
		a.log.Info(ctx, "user logged out", "user", prev.ID)
	}
	return nil
}

// RestoreSession returns (nil, nil) when no marker is stored. A marker that
// is unreadable or names a user missing from the registry is deleted and
// treated the same way.
func (a *accountService) RestoreSession(ctx context.Context) (*models.User, error) {
	registry, err := a.users.LoadAll(ctx)
	if err != nil {
		return nil, a.storageErr(ctx, "failed to load users", common.UsersKey, err)
	}

	marker, err := a.sessions.Load(ctx)
	if errors.Is(err, session.ErrMalformed) {
		return nil, a.discardSession(ctx, "discarding unreadable session", err)
	}
	if err != nil {
		return nil, a.storageErr(ctx, "failed to load session", common.CurrentUserKey, err)
	}
	if marker == nil {
		a.log.Debug(ctx, "no stored session", "users", len(registry))
		return nil, nil
	}

	u := findUser(registry, func(u models.User) bool { return u.ID == marker.ID })
	if u == nil {
		return nil, a.discardSession(ctx, "discarding session of unknown user", fmt.Errorf("user %q is not registered", marker.ID))
	}

	restored, err := a.signIn(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "session restored", "user", u.ID)
	return restored, nil
}

func (a *accountService) discardSession(ctx context.Context, msg string, cause error) error {
	a.log.Warn(ctx, msg, "key", common.CurrentUserKey, "err", cause)
	if err := a.sessions.Clear(ctx); err != nil {
		return a.storageErr(ctx, "failed to remove session", common.CurrentUserKey, err)
	}
	return nil
}

func (a *accountService) Current() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *accountService) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

func (a *accountService) Close() error {
	return a.store.Close()
}
