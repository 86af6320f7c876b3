// Package state keeps a journal of completed runs for the history
// report. Reporting only: the reconciliation engine never consults it,
// and no engine state survives across runs.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run statuses
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Manager handles run-history persistence
type Manager struct {
	db *sql.DB
}

// RunRecord represents one completed reconciliation or export run
type RunRecord struct {
	ID        int64
	Operation string // "sync" or "export"
	StartTime time.Time
	EndTime   time.Time
	Status    string // success, partial, failed
	Created   int
	Refreshed int
	Skipped   int
	Forced    int
	Conflicts int
	Failed    int
	Error     string
}

// NewManager opens (creating if needed) the journal database in dataDir
func NewManager(dataDir string) (*Manager, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "liblink.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection avoids "database is locked" errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	manager := &Manager{db: db}
	if err := manager.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return manager, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		operation TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		status TEXT NOT NULL,
		created INTEGER DEFAULT 0,
		refreshed INTEGER DEFAULT 0,
		skipped INTEGER DEFAULT 0,
		forced INTEGER DEFAULT 0,
		conflicts INTEGER DEFAULT 0,
		failed INTEGER DEFAULT 0,
		error TEXT,
		recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(start_time DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_operation ON runs(operation, start_time DESC);
	`

	_, err := m.db.Exec(schema)
	return err
}

// SaveRun records a completed run
func (m *Manager) SaveRun(record RunRecord) error {
	if record.Status != StatusSuccess && record.Status != StatusPartial && record.Status != StatusFailed {
		return fmt.Errorf("invalid status: %s", record.Status)
	}
	if record.Operation == "" {
		return fmt.Errorf("operation cannot be empty")
	}

	query := `
		INSERT INTO runs (operation, start_time, end_time, status, created, refreshed, skipped, forced, conflicts, failed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		record.Operation,
		record.StartTime,
		record.EndTime,
		record.Status,
		record.Created,
		record.Refreshed,
		record.Skipped,
		record.Forced,
		record.Conflicts,
		record.Failed,
		record.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	return nil
}

// History retrieves the most recent runs, newest first
func (m *Manager) History(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT id, operation, start_time, end_time, status, created, refreshed, skipped, forced, conflicts, failed, error
		FROM runs
		ORDER BY start_time DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.ID, &r.Operation, &r.StartTime, &r.EndTime, &r.Status,
			&r.Created, &r.Refreshed, &r.Skipped, &r.Forced, &r.Conflicts, &r.Failed, &r.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return records, nil
}

// Close releases the database handle
func (m *Manager) Close() error {
	return m.db.Close()
}
