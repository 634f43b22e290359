// Package services contains the application services of the gophtodo client:
// AccountService for sign up, login and session restore, and TaskService for
// the signed-in user's task list.
//
// Services hold in-memory state and write it through to a kv.Store.
// Errors are wrapped around the sentinels in internal/common; match them
// with errors.Is.
package services
