package config

import (
	"fmt"
	"os"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Backend      string
	StateFile    string
	SQLiteFile   string
	AuditLogFile string
	LogLevel     string
}

func Load() (Config, error) {
	cfg := Config{
		Backend:      getEnv("TICKETFLOW_BACKEND", BackendFile),
		StateFile:    getEnv("TICKETFLOW_STATE_FILE", "./data/ticketflow.json"),
		SQLiteFile:   getEnv("TICKETFLOW_SQLITE_FILE", "./data/ticketflow.db"),
		AuditLogFile: getEnv("TICKETFLOW_AUDIT_LOG_FILE", "./data/audit.log"),
		LogLevel:     getEnv("TICKETFLOW_LOG_LEVEL", "info"),
	}

	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("TICKETFLOW_BACKEND must be file, sqlite, or memory")
	}
	if cfg.Backend == BackendFile && cfg.StateFile == "" {
		return Config{}, fmt.Errorf("TICKETFLOW_STATE_FILE must not be empty")
	}
	if cfg.Backend == BackendSQLite && cfg.SQLiteFile == "" {
		return Config{}, fmt.Errorf("TICKETFLOW_SQLITE_FILE must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
