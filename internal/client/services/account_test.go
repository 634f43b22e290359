package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedUsers(t *testing.T, f *fixture) []models.User {
	t.Helper()
	raw, err := f.store.MemoryStore.Get(context.Background(), common.UsersKey)
	require.NoError(t, err)
	var list []models.User
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func TestSignUp_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.account.SignUp(ctx, " a@x.com ", "alice", "secret1", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "secret1", u.Password)
	assert.Equal(t, u, f.account.Current())

	assert.Equal(t, []models.User{*u}, storedUsers(t, f))

	marker, err := f.store.MemoryStore.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.NotNil(t, marker)

	list, err := f.tasks.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name                       string
		email, user, pass, confirm string
	}{
		{"empty email", "", "alice", "secret1", "secret1"},
		{"blank email", "   ", "alice", "secret1", "secret1"},
		{"empty username", "a@x.com", "", "secret1", "secret1"},
		{"empty password", "a@x.com", "alice", "", ""},
		{"empty confirm", "a@x.com", "alice", "secret1", ""},
		{"mismatch", "a@x.com", "alice", "secret1", "secret2"},
		{"too short", "a@x.com", "alice", "12345", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.account.SignUp(context.Background(), tt.email, tt.user, tt.pass, tt.confirm)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Nil(t, f.account.Current())
			assert.Empty(t, f.store.Keys())
		})
	}
}

func TestSignUp_PasswordLengthBoundary(t *testing.T) {
	f := newFixture(t)
	_, err := f.account.SignUp(context.Background(), "a@x.com", "alice", "12345", "12345")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = f.account.SignUp(context.Background(), "a@x.com", "alice", "123456", "123456")
	require.NoError(t, err)
}

func TestSignUp_PasswordLengthCountsCharacters(t *testing.T) {
	f := newFixture(t)
	// six characters, twelve bytes
	_, err := f.account.SignUp(context.Background(), "a@x.com", "alice", "пароль", "пароль")
	require.NoError(t, err)
}

func TestSignUp_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	require.NoError(t, f.account.Logout(ctx))

	_, err := f.account.SignUp(ctx, "a@x.com", "someone-else", "secret1", "secret1")
	require.ErrorIs(t, err, common.ErrConflict)

	_, err = f.account.SignUp(ctx, "b@x.com", "alice", "secret1", "secret1")
	require.ErrorIs(t, err, common.ErrConflict)

	assert.Len(t, storedUsers(t, f), 1)
	assert.Nil(t, f.account.Current())
}

func TestSignUp_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failSet = true

	_, err := f.account.SignUp(context.Background(), "a@x.com", "alice", "secret1", "secret1")
	require.ErrorIs(t, err, common.ErrStorage)
	require.ErrorIs(t, err, errDiskFull)
	assert.Nil(t, f.account.Current())
}

func TestSignUp_WritesRegistryBeforeMarker(t *testing.T) {
	f := signedIn(t)
	assert.Equal(t, []string{common.UsersKey, common.CurrentUserKey}, f.store.setKeys)
}

func TestSignUp_RegistryFailureLeavesNoMarker(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.failKey = common.UsersKey

	u, err := f.account.SignUp(ctx, "a@x.com", "alice", "secret1", "secret1")
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Nil(t, u)
	assert.Nil(t, f.account.Current())
	assert.Empty(t, f.store.Keys())

	_, err = f.tasks.Add(ctx, "orphan")
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestLogin_EmptyRegistry(t *testing.T) {
	f := newFixture(t)
	_, err := f.account.Login(context.Background(), "a@x.com", "secret1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestLogin_UnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	require.NoError(t, f.account.Logout(ctx))

	_, err := f.account.Login(ctx, "nobody@x.com", "secret1")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.account.Login(ctx, "a@x.com", "wrong-pass")
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Nil(t, f.account.Current())
}

func TestLogin_Success_LoadsTasksAndPersistsMarker(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	_, err := f.tasks.Add(ctx, "buy milk")
	require.NoError(t, err)
	require.NoError(t, f.account.Logout(ctx))

	u, err := f.account.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	list, err := f.tasks.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"buy milk"}, titles(list))

	marker, err := f.store.MemoryStore.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(marker), u.ID))
}

func TestLogin_UnreadableTasksLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	id := f.account.Current().ID
	require.NoError(t, f.account.Logout(ctx))
	require.NoError(t, f.store.MemoryStore.Set(ctx, common.TodosKey(id), []byte("oops")))

	u, err := f.account.Login(ctx, "a@x.com", "secret1")
	require.ErrorIs(t, err, common.ErrStorage)
	assert.NotErrorIs(t, err, common.ErrUnsaved)
	assert.Nil(t, u)
	assert.Nil(t, f.account.Current())

	marker, err := f.store.MemoryStore.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.Nil(t, marker)

	_, err = f.tasks.List()
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestLogin_MarkerFailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	require.NoError(t, f.account.Logout(ctx))
	f.store.failKey = common.CurrentUserKey

	u, err := f.account.Login(ctx, "a@x.com", "secret1")
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Nil(t, u)
	assert.Nil(t, f.account.Current())

	_, err = f.tasks.List()
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	_, err := f.tasks.Add(ctx, "buy milk")
	require.NoError(t, err)
	require.NoError(t, f.tasks.Search("milk"))

	require.NoError(t, f.account.Logout(ctx))

	assert.Nil(t, f.account.Current())
	_, err = f.tasks.List()
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Empty(t, f.tasks.Query())

	marker, err := f.store.MemoryStore.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.Nil(t, marker)
}

func TestRestoreSession_NoMarker(t *testing.T) {
	f := newFixture(t)
	u, err := f.account.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, f.account.Current())
}

func TestRestoreSession_ResumesAndLoadsTasks(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	_, err := f.tasks.Add(ctx, "buy milk")
	require.NoError(t, err)

	// a fresh process over the same store
	restarted := NewAccountService(f.store, f.tasks, logging.Nop())
	f.tasks.Reset()

	u, err := restarted.RestoreSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)

	list, err := f.tasks.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"buy milk"}, titles(list))
}

func TestRestoreSession_MalformedMarkerIsDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.MemoryStore.Set(ctx, common.CurrentUserKey, []byte("{broken")))

	u, err := f.account.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	marker, err := f.store.MemoryStore.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.Nil(t, marker)
}

func TestRestoreSession_UnregisteredUserIsDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ghost := []byte(`{"id":"ghost","email":"g@x","username":"ghost","password":"secret1"}`)
	require.NoError(t, f.store.MemoryStore.Set(ctx, common.CurrentUserKey, ghost))

	u, err := f.account.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, f.account.Current())

	_, err = f.tasks.Add(ctx, "orphan")
	require.ErrorIs(t, err, common.ErrNoSession)
	assert.Empty(t, f.store.Keys())
}

func TestRestoreSession_UsesRegistryRecord(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	id := f.account.Current().ID
	stale := []byte(`{"id":"` + id + `","email":"old@x.com","username":"old","password":"secret1"}`)
	require.NoError(t, f.store.MemoryStore.Set(ctx, common.CurrentUserKey, stale))

	restarted := NewAccountService(f.store, f.tasks, logging.Nop())
	u, err := restarted.RestoreSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
}

func TestRestoreSession_UnreadableTasksLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	f := signedIn(t)
	id := f.account.Current().ID
	require.NoError(t, f.store.MemoryStore.Set(ctx, common.TodosKey(id), []byte("oops")))

	f.tasks.Reset()
	restarted := NewAccountService(f.store, f.tasks, logging.Nop())
	u, err := restarted.RestoreSession(ctx)
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Nil(t, u)
	assert.Nil(t, restarted.Current())

	_, err = f.tasks.List()
	require.ErrorIs(t, err, common.ErrNoSession)

	marker, err := f.store.MemoryStore.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.NotNil(t, marker)
}

func TestRestoreSession_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.failGet = true

	_, err := f.account.RestoreSession(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestPingAndClose(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.account.Ping(context.Background()))
	require.NoError(t, f.account.Close())
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.account.SignUp(ctx, "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)
	require.Equal(t, "alice", f.account.Current().Username)

	added, err := f.tasks.Add(ctx, "buy milk")
	require.NoError(t, err)

	list, err := f.tasks.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "buy milk", list[0].Title)
	assert.False(t, list[0].Completed)
	assert.Equal(t, u.ID, list[0].OwnerID)

	require.NoError(t, f.tasks.ToggleCompleted(ctx, added.ID))
	got, ok := f.tasks.Get(added.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)

	require.NoError(t, f.account.Logout(ctx))

	restored, err := f.account.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.Nil(t, f.account.Current())

	_, err = f.tasks.List()
	require.ErrorIs(t, err, common.ErrUnauthorized)
	total, _ := f.tasks.Counts()
	assert.Zero(t, total)
}
