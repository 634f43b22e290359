package kv

import (
	"context"
	"fmt"
)

// Store is the durable key/value collaborator.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

// Batcher is implemented by stores that can write several keys atomically.
type Batcher interface {
	SetMany(ctx context.Context, entries []Entry) error
}

// SetMany writes all entries, atomically when s implements Batcher.
// Otherwise entries are written one at a time in the given order and the
// first failure stops the batch, so later entries are never written ahead
// of earlier ones.
func SetMany(ctx context.Context, s Store, entries ...Entry) error {
	if b, ok := s.(Batcher); ok {
		return b.SetMany(ctx, entries)
	}
	for _, e := range entries {
		if err := s.Set(ctx, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	SQLitePath  string
	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3 S3Options

	// KeyPrefix namespaces keys in shared backends (redis, s3).
	KeyPrefix string
}

// Open constructs the backend named by opts.Backend and prepares it for use
// (directories, schema migrations, clients).
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN)
	case BackendRedis:
		return OpenRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.KeyPrefix), nil
	case BackendS3:
		return OpenS3(ctx, opts.S3, opts.KeyPrefix)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
