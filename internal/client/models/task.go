package models

import "strings"

// Task is a single to-do item owned by one user.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	OwnerID   string `json:"ownerId"`
}

// Matches reports whether the title contains query, ignoring case.
// An empty query matches everything.
func (t Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(query))
}
