package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// output collects everything printed through printlnFn.
type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := strings.TrimRight(fmt.Sprintln(a...), "\n")
		o.mu.Lock()
		o.lines = append(o.lines, s)
		o.mu.Unlock()
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// plainPasswords makes getPassword read from the line reader.
func plainPasswords(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func newTestAppWithStore(t *testing.T, store kv.Store, lines ...string) *App {
	t.Helper()
	plainPasswords(t)

	ts := services.NewTaskService(tasks.NewKVRepository(store), logging.Nop())
	return &App{
		config: &config.Config{
			StorageCheckInterval:  time.Hour,
			SessionRestoreTimeout: time.Second,
		},
		account: services.NewAccountService(store, ts, logging.Nop()),
		tasks:   ts,
		log:     logging.Nop(),
		reader:  readerFromLines(lines...),
		out:     io.Discard,
	}
}

func newTestApp(t *testing.T, lines ...string) *App {
	t.Helper()
	return newTestAppWithStore(t, kv.NewMemoryStore(), lines...)
}

// signUp registers alice through the service layer.
func signUp(t *testing.T, a *App) {
	t.Helper()
	_, err := a.account.SignUp(context.Background(), "a@x.com", "alice", "secret1", "secret1")
	require.NoError(t, err)
}
