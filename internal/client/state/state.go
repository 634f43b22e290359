// Package state holds the in-memory view of one signed-in user's tasks.
//
// A State is a value. Every function returns a new State whose slices do
// not share backing arrays with the input, so callers can keep the old
// value around (for example to compare before and after a command).
//
// Master is the complete list in insertion order and is what gets
// persisted. Live is the displayed subset: equal to Master when Query is
// empty, otherwise the Master entries matching Query.
package state

import (
	"slices"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type State struct {
	Owner  string
	Master []models.Task
	Live   []models.Task
	Query  string
}

// New returns an empty state for owner.
func New(owner string) State {
	return State{Owner: owner, Master: []models.Task{}, Live: []models.Task{}}
}

// Load replaces everything with tasks loaded from storage and clears the
// filter.
func Load(owner string, tasks []models.Task) State {
	master := clone(tasks)
	return State{Owner: owner, Master: master, Live: clone(master)}
}

// Append adds t to the end of both lists.
func Append(s State, t models.Task) State {
	return State{
		Owner:  s.Owner,
		Master: append(clone(s.Master), t),
		Live:   append(clone(s.Live), t),
		Query:  s.Query,
	}
}

// Remove drops the task with id from both lists. Unknown ids leave the
// state unchanged.
func Remove(s State, id string) State {
	drop := func(t models.Task) bool { return t.ID == id }
	return State{
		Owner:  s.Owner,
		Master: slices.DeleteFunc(clone(s.Master), drop),
		Live:   slices.DeleteFunc(clone(s.Live), drop),
		Query:  s.Query,
	}
}

// Toggle flips Completed on the task with id in both lists.
func Toggle(s State, id string) State {
	return update(s, id, func(t *models.Task) { t.Completed = !t.Completed })
}

// Rename sets the title of the task with id in both lists.
func Rename(s State, id, title string) State {
	return update(s, id, func(t *models.Task) { t.Title = title })
}

// Filter recomputes Live from Master for query. Master is untouched.
func Filter(s State, query string) State {
	live := make([]models.Task, 0, len(s.Master))
	for _, t := range s.Master {
		if t.Matches(query) {
			live = append(live, t)
		}
	}
	return State{Owner: s.Owner, Master: clone(s.Master), Live: live, Query: query}
}

// Display returns Live newest first.
func Display(s State) []models.Task {
	out := clone(s.Live)
	slices.Reverse(out)
	return out
}

// Find looks id up in Master.
func Find(s State, id string) (models.Task, bool) {
	i := slices.IndexFunc(s.Master, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return s.Master[i], true
}

func update(s State, id string, fn func(*models.Task)) State {
	out := State{Owner: s.Owner, Master: clone(s.Master), Live: clone(s.Live), Query: s.Query}
	for _, list := range [][]models.Task{out.Master, out.Live} {
		for i := range list {
			if list[i].ID == id {
				fn(&list[i])
			}
		}
	}
	return out
}

func clone(in []models.Task) []models.Task {
	out := make([]models.Task, len(in))
	copy(out, in)
	return out
}
