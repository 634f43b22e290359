package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
)

// Mode reflects whether the durable store answered the last health check.
type Mode string

const (
	ModeAvailable   Mode = "available"
	ModeUnavailable Mode = "unavailable"
)

const pingTimeout = 3 * time.Second

type App struct {
	config  *config.Config
	account services.AccountService
	tasks   services.TaskService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	modeMu sync.Mutex
	mode   Mode
}

// NewApp opens the configured store and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := kv.Open(ctx, c.StoreOptions())
	if err != nil {
		log.Error(ctx, "error opening store", "backend", c.StoreBackend, "err", err)
		return nil, fmt.Errorf("open %s store: %w", c.StoreBackend, err)
	}

	ts := services.NewTaskService(tasks.NewKVRepository(store), log)
	as := services.NewAccountService(store, ts, log)

	return &App{
		config:  c,
		account: as,
		tasks:   ts,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "storage mode changed", "mode", string(mode))
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.account.Close(); err != nil {
			a.log.Warn(ctx, "error closing store", "err", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.account.Current() != nil
}

// checkStorage pings the store once and updates the mode.
func (a *App) checkStorage(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.account.Ping(pctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "storage ping failed", "err", err)
		a.setMode(ctx, ModeUnavailable)
		return
	}
	a.setMode(ctx, ModeAvailable)
}

// StartStorageWatcher checks the store every interval until ctx is done.
// A non-positive interval disables the watcher.
func (a *App) StartStorageWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkStorage(ctx)
		case <-ctx.Done():
			return
		}
	}
}
