// Package common contains shared constants and sentinel errors used across
// gophtodo components.
package common

// Key names in the durable key/value store.
const (
	UsersKey       = "users"
	CurrentUserKey = "currentUser"

	// LegacyTodosKey is the unpartitioned key used by single-user
	// installations. It is never written.
	LegacyTodosKey = "todos"

	todosKeyPrefix = "todos_"
)

// TodosKey returns the key holding the task collection of the given user.
func TodosKey(userID string) string {
	return todosKeyPrefix + userID
}
