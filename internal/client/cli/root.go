package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if u := a.account.Current(); u != nil {
		parts = append(parts, u.Username)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, " "))
}

// restore resumes the previous session while "Loading..." is shown.
func (a *App) restore(ctx context.Context) {
	printlnFn("Loading...")

	rctx, cancel := context.WithTimeout(ctx, a.config.SessionRestoreTimeout)
	defer cancel()

	u, err := a.account.RestoreSession(rctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "err", err)
		printlnFn(errorMessage(err))
	}
	if u == nil {
		printlnFn("Please log in or sign up (type 'help' for commands)")
		return
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", u.Username))
	if err := a.List(ctx); err != nil {
		printlnFn(errorMessage(err))
	}
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophtodo (type 'help' for commands)")

	a.restore(ctx)
	a.checkStorage(ctx)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartStorageWatcher(wctx, a.config.StorageCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
