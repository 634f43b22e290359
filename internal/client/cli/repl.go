package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, arg string) error
	Toggle(ctx context.Context, arg string) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Search(ctx context.Context, arg string) error
	Stats(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, add [title], done <n>, edit <n>, delete <n>, search [text], stats, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The prompt shows the current status (from statusFn). The loop exits on EOF
// or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help              show available commands
//	  - signup            create an account and log in
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - l | list          list tasks, newest first
//	  - add [title]       add a task
//	  - done | toggle <n> toggle completion of task n (or an id)
//	  - edit <n>          change the title
//	  - delete | rm <n>   delete after confirmation
//	  - search [text]     filter by title; no text clears the filter
//	  - stats             completed / open counts
//	  - logout            log out
//
// Errors returned by handlers are printed and the loop continues. A handler
// reporting a missing session forces a logout.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("todo%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, arg := splitCommand(line)
		if cmd == "" {
			continue
		}

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, arg); err != nil {
			printlnFn(errorMessage(err))
			if errors.Is(err, common.ErrNoSession) && a.isLoggedIn() {
				_ = a.Logout(ctx)
			}
		}
	}
}

// splitCommand returns the first word of line and the text after it. Only
// the whitespace separating the two is dropped, so spacing inside the
// argument reaches the handler unchanged.
func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "signup", "register":
		return a.SignUp(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "l", "list", "add", "done", "toggle", "edit", "delete", "rm", "search", "stats":
			printlnFn("Please log in or sign up first")
		default:
			printlnFn("Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx, arg)
	case "done", "toggle":
		return a.Toggle(ctx, arg)
	case "edit":
		return a.Edit(ctx, arg)
	case "delete", "rm":
		return a.Delete(ctx, arg)
	case "search":
		return a.Search(ctx, arg)
	case "stats":
		return a.Stats(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

// errorMessage turns a handler error into the line shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrUnsaved):
		return "Storage failure: the change is kept in memory but may not be saved"
	case errors.Is(err, common.ErrStorage):
		return "Storage failure: nothing was changed, please try again"
	case errors.Is(err, common.ErrNoSession):
		return "Session expired, please log in again"
	default:
		return "Error: " + err.Error()
	}
}
