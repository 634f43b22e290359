// Package kv provides the durable key/value store behind gophtodo.
//
// # Overview
//
// Every piece of persistent state (the user registry, the current-session
// marker and each user's task collection) is a JSON document stored under a
// fixed key. The Store interface is deliberately small: Get, Set and Remove,
// plus Ping for health checks and Close for shutdown.
//
// # Backends
//
//   - SQLStore over SQLite (modernc.org/sqlite), the default, or PostgreSQL
//     (pgx). Both create their `kv` table with embedded goose migrations.
//   - RedisStore over go-redis, with an optional key prefix.
//   - S3Store, one object per key under a prefix. Works with MinIO.
//   - MemoryStore, a process-local map used by tests and throwaway sessions.
//
// Open selects a backend from Options.
//
// # Contract
//
// Get returns (nil, nil) when a key is absent. Remove of an absent key is
// not an error. Values returned by Get are owned by the caller.
package kv
