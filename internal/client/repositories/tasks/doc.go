// Package tasks persists each user's task list under "todos_<userId>".
// The whole list is rewritten on every save.
package tasks
