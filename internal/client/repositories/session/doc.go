// Package session persists the "currentUser" marker that lets the next
// start resume the last signed-in account.
package session
