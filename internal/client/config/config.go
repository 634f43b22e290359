package config

import (
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/kv"
)

// Config holds runtime settings for the gophtodo CLI.
//
// Units: StorageCheckInterval and SessionRestoreTimeout are time.Duration.
type Config struct {
	StoreBackend string
	SQLitePath   string
	PostgresDSN  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// KeyPrefix namespaces keys in shared backends (redis, s3).
	KeyPrefix string

	StorageCheckInterval  time.Duration
	SessionRestoreTimeout time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreBackend = kv.BackendSQLite
	c.SQLitePath = "data/todo.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.S3Region = "us-east-1"
	c.S3Bucket = "gophtodo"
	c.KeyPrefix = "gophtodo:"
	c.StorageCheckInterval = 3 * time.Second
	c.SessionRestoreTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// StoreOptions converts the storage part of c for kv.Open.
func (c *Config) StoreOptions() kv.Options {
	return kv.Options{
		Backend:       c.StoreBackend,
		SQLitePath:    c.SQLitePath,
		PostgresDSN:   c.PostgresDSN,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		S3: kv.S3Options{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		},
		KeyPrefix: c.KeyPrefix,
	}
}
