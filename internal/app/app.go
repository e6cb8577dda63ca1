package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"ticketflowapp/ticketflow/internal/audit"
	"ticketflowapp/ticketflow/internal/config"
	"ticketflowapp/ticketflow/internal/directory"
	"ticketflowapp/ticketflow/internal/observability"
	"ticketflowapp/ticketflow/internal/session"
	"ticketflowapp/ticketflow/internal/storage"
	"ticketflowapp/ticketflow/internal/ticket"
)

// App wires the configured storage backend into the three data-layer
// components plus the audit trail. The UI layer (the CLI) calls the
// components directly; App owns their lifetimes.
type App struct {
	Log      *slog.Logger
	Users    *directory.Directory
	Sessions *session.Manager
	Tickets  *ticket.Store
	Audit    *audit.Logger

	cfg config.Config
	db  *sql.DB
}

func New(cfg config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.LogLevel)

	var kv storage.Store
	var db *sql.DB
	var err error
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLiteFile), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir sqlite dir: %w", err)
		}
		db, err = sql.Open("sqlite3", cfg.SQLiteFile)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping sqlite database: %w", err)
		}
		kv, err = storage.NewSQLiteStore(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create sqlite store: %w", err)
		}
	case config.BackendMemory:
		kv = storage.NewMemoryStore()
	default:
		kv, err = storage.NewFileStore(cfg.StateFile)
		if err != nil {
			return nil, fmt.Errorf("create file store: %w", err)
		}
	}

	users, err := directory.New(kv)
	if err != nil {
		closeQuiet(db)
		return nil, fmt.Errorf("create user directory: %w", err)
	}
	sessions, err := session.NewManager(kv, users)
	if err != nil {
		closeQuiet(db)
		return nil, fmt.Errorf("create session manager: %w", err)
	}
	tickets, err := ticket.NewStore(kv)
	if err != nil {
		closeQuiet(db)
		return nil, fmt.Errorf("create ticket store: %w", err)
	}

	logger.Debug("data store ready", "backend", cfg.Backend)

	return &App{
		Log:      logger,
		Users:    users,
		Sessions: sessions,
		Tickets:  tickets,
		Audit:    audit.NewLogger(cfg.AuditLogFile),
		cfg:      cfg,
		db:       db,
	}, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func closeQuiet(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
