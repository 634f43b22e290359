// Package common defines shared constants and sentinel errors used across
// the gophtodo client layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Input errors: empty or malformed values. No state is changed.
	ErrValidation = errors.New("validation error")

	// Duplicate email or username on signup.
	ErrConflict = errors.New("already exists")

	// Bad credentials, or an operation that needs a session ran without one.
	ErrUnauthorized = errors.New("unauthorized")

	// Login against an empty registry or an unknown email.
	ErrNotFound = errors.New("not found")

	// Durable store read/write failure.
	ErrStorage = errors.New("storage error")
)

// ErrNoSession is the ErrUnauthorized variant for task operations run
// without a signed-in user. The CLI reacts to it with a forced logout.
var ErrNoSession = fmt.Errorf("%w: no active session", ErrUnauthorized)

// ErrUnsaved is the ErrStorage variant for a task change that was applied in
// memory but could not be persisted. Memory is not rolled back.
var ErrUnsaved = fmt.Errorf("%w: change not saved", ErrStorage)
