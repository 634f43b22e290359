package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

var errNoSuchTask = errors.New("no such task")

// resolve maps a display position (1-based, newest first) or a task id to
// the task. Without ref the user is asked for one.
func (a *App) resolve(ref, prompt string) (*models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		var err error
		ref, err = getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return nil, err
		}
		ref = strings.TrimSpace(ref)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		list, err := a.tasks.List()
		if err != nil {
			return nil, err
		}
		if n < 1 || n > len(list) {
			return nil, fmt.Errorf("%w: %d", errNoSuchTask, n)
		}
		t := list[n-1]
		return &t, nil
	}

	if t, ok := a.tasks.Get(ref); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", errNoSuchTask, ref)
}

func (a *App) List(ctx context.Context) error {
	list, err := a.tasks.List()
	if err != nil {
		return err
	}
	printlnFn(renderList(list, a.tasks.Query()))
	return nil
}

func (a *App) Add(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		var err error
		title, err = getSimpleText(a.reader, "Enter title", a.out)
		if err != nil {
			return err
		}
	}

	t, err := a.tasks.Add(ctx, title)
	if err != nil {
		return err
	}
	if t == nil {
		printlnFn("Nothing to add")
		return nil
	}
	return a.List(ctx)
}

func (a *App) Toggle(ctx context.Context, ref string) error {
	t, err := a.resolve(ref, "Enter task number or id to toggle")
	if err != nil {
		return err
	}
	if err := a.tasks.ToggleCompleted(ctx, t.ID); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Edit(ctx context.Context, ref string) error {
	t, err := a.resolve(ref, "Enter task number or id to edit")
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("New title (current: %s)", t.Title), a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		printlnFn("Title unchanged")
		return nil
	}

	if err := a.tasks.EditTitle(ctx, t.ID, title); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Delete(ctx context.Context, ref string) error {
	t, err := a.resolve(ref, "Enter task number or id to delete")
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %q? [y/N]", t.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.tasks.Delete(ctx, t.ID); err != nil {
		return err
	}
	printlnFn("Deleted " + t.Title)
	return nil
}

// Search filters the list by query as typed; an empty query clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	if err := a.tasks.Search(query); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Stats(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNoSession
	}
	total, completed := a.tasks.Counts()
	printlnFn(fmt.Sprintf("Total: %d, completed: %d, open: %d", total, completed, total-completed))
	return nil
}
