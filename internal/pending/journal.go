package pending

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Journal persists submitted operation ids and their settlement outcomes so
// they can be audited after the session ends. It records operations, not
// configuration.
type Journal struct {
	db   *sql.DB
	lock *flock.Flock
}

func OpenJournal(path, lockPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal lock directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal sqlite: %w", err)
	}

	queries := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS operations (
			op_id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			submitted_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_operations_updated ON operations(updated_at DESC);",
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init journal schema: %w", err)
		}
	}
	return &Journal{db: db, lock: flock.New(lockPath)}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record upserts one operation row, keyed by operation id.
func (j *Journal) Record(op Operation) error {
	if op.ID == "" {
		return fmt.Errorf("record operation: missing id")
	}
	locked, err := j.lock.TryLockContext(context.Background(), 5*time.Second)
	if err != nil {
		return fmt.Errorf("lock journal: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock journal: timeout acquiring lock")
	}
	defer func() { _ = j.lock.Unlock() }()

	_, err = j.db.Exec(`
		INSERT INTO operations (op_id, state, submitted_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(op_id) DO UPDATE SET
			state=excluded.state,
			updated_at=excluded.updated_at
	`, op.ID, op.State.String(), op.SubmittedAt.UTC().Unix(), time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("record operation: %w", err)
	}
	return nil
}

// JournalEntry is one persisted operation row.
type JournalEntry struct {
	ID          string
	State       string
	SubmittedAt time.Time
}

// History returns the most recently updated operations, newest first.
func (j *Journal) History(limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(
		"SELECT op_id, state, submitted_at FROM operations ORDER BY updated_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	entries := make([]JournalEntry, 0)
	for rows.Next() {
		var e JournalEntry
		var submitted int64
		if err := rows.Scan(&e.ID, &e.State, &submitted); err != nil {
			return nil, fmt.Errorf("scan operation row: %w", err)
		}
		e.SubmittedAt = time.Unix(submitted, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operation rows: %w", err)
	}
	return entries, nil
}
