// Package cli provides the interactive gophtodo command-line client.
//
// It wires configuration, the key/value store and the account and task
// services into a REPL. Typical flow: print "Loading...", restore the last
// session, start a background storage watcher, then execute user commands
// until exit.
//
// Key features:
//   - Sign up / Login / Logout
//   - Add, toggle, edit and delete tasks (delete asks for confirmation)
//   - Search the list, show completion stats
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartStorageWatcher and runREPL for details.
package cli
