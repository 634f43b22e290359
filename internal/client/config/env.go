package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "GOPHTODO_"

const defaultEnvFile = ".env"

// loadDotenv loads the file named by -e/-env, or ./.env if it exists.
// Variables already present in the environment are kept.
func loadDotenv() {
	path := flagx.EnvFilePath(os.Args[1:])
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays cfg with GOPHTODO_* variables. It panics on values
// that cannot be parsed.
func parseEnv(cfg *Config) {
	loadDotenv()

	envString(&cfg.StoreBackend, "STORE")
	envString(&cfg.SQLitePath, "SQLITE_PATH")
	envString(&cfg.PostgresDSN, "POSTGRES_DSN")
	envString(&cfg.RedisAddr, "REDIS_ADDR")
	envString(&cfg.RedisPassword, "REDIS_PASSWORD")
	envString(&cfg.S3Bucket, "S3_BUCKET")
	envString(&cfg.S3Region, "S3_REGION")
	envString(&cfg.S3Endpoint, "S3_ENDPOINT")
	envString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	envString(&cfg.S3SecretKey, "S3_SECRET_KEY")
	envString(&cfg.KeyPrefix, "KEY_PREFIX")
	envString(&cfg.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv(envPrefix + "REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = n
	}
	envDuration(&cfg.StorageCheckInterval, "STORAGE_CHECK_INTERVAL")
	envDuration(&cfg.SessionRestoreTimeout, "SESSION_RESTORE_TIMEOUT")
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func envDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
