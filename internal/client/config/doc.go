// Package config loads runtime configuration for the gophtodo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: GOPHTODO_* variables, plus an optional dotenv file
//     (-e/-env, otherwise ./.env when present). Variables already set in
//     the process environment win over the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string   store backend: sqlite, postgres, redis, s3, memory
//	-d string   SQLite database path
//	-i int      storage check interval (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "store_backend": "sqlite",
//	  "sqlite_path": "data/todo.db",
//	  "storage_check_interval": "3s",
//	  "session_restore_timeout": "5s",
//	  "log_level": "info"
//	}
package config
