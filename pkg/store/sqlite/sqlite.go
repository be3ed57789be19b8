package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Config controls SQLite initialization.
type Config struct {
	Path   string
	Logger *slog.Logger
}

// Database wraps the sql.DB handle backing the experience archive.
type Database struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens the database and ensures schema.
func New(ctx context.Context, cfg Config) (*Database, error) {
	if cfg.Path == "" {
		return nil, errors.New("database path is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", cfg.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	wrapper := &Database{db: db, logger: cfg.Logger}
	if err := wrapper.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	cfg.Logger.Info("experience archive ready", "path", cfg.Path)
	return wrapper, nil
}

func (d *Database) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS experience_logs (
            id TEXT PRIMARY KEY,
            session_id TEXT NOT NULL,
            timestamp DATETIME NOT NULL,
            environment JSON,
            dominant_sense TEXT,
            overall_intensity REAL,
            experience_quality TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS readings (
            id TEXT PRIMARY KEY,
            log_id TEXT NOT NULL REFERENCES experience_logs(id) ON DELETE CASCADE,
            sense TEXT NOT NULL,
            intensity REAL NOT NULL,
            quality TEXT,
            location TEXT,
            created_at DATETIME NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_logs_session ON experience_logs(session_id, timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_readings_log ON readings(log_id);`,
		`CREATE INDEX IF NOT EXISTS idx_readings_sense ON readings(sense);`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database.
func (d *Database) Close() error {
	return d.db.Close()
}
