package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		title TEXT NOT NULL,
		narrative TEXT NOT NULL,
		markdown TEXT NOT NULL,
		refs TEXT NOT NULL,
		entries TEXT NOT NULL,
		page_url TEXT,
		revisions INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveReport upserts r. CreatedAt is kept from the first save.
func (s *SQLiteStore) SaveReport(ctx context.Context, r *Report) error {
	refsJSON, err := json.Marshal(r.References)
	if err != nil {
		return fmt.Errorf("failed to marshal references: %w", err)
	}
	entriesJSON, err := json.Marshal(r.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, topic, title, narrative, markdown, refs, entries, page_url, revisions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   narrative = excluded.narrative,
		   markdown = excluded.markdown,
		   refs = excluded.refs,
		   entries = excluded.entries,
		   page_url = excluded.page_url,
		   revisions = excluded.revisions,
		   updated_at = excluded.updated_at`,
		r.ID, r.Topic, r.Title, r.Narrative, r.Markdown, string(refsJSON), string(entriesJSON),
		r.PageURL, r.Revisions, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

const selectReport = `SELECT id, topic, title, narrative, markdown, refs, entries, page_url, revisions, created_at, updated_at FROM reports`

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*Report, error) {
	var (
		r           Report
		refsJSON    string
		entriesJSON string
		pageURL     sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Topic, &r.Title, &r.Narrative, &r.Markdown, &refsJSON, &entriesJSON,
		&pageURL, &r.Revisions, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.PageURL = pageURL.String
	if err := json.Unmarshal([]byte(refsJSON), &r.References); err != nil {
		return nil, fmt.Errorf("failed to unmarshal references: %w", err)
	}
	if err := json.Unmarshal([]byte(entriesJSON), &r.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	return &r, nil
}

// GetReport returns a report by ID.
func (s *SQLiteStore) GetReport(ctx context.Context, id string) (*Report, error) {
	r, err := scanReport(s.db.QueryRowContext(ctx, selectReport+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// ListReports returns reports newest first.
func (s *SQLiteStore) ListReports(ctx context.Context, offset, limit int) ([]*Report, error) {
	rows, err := s.db.QueryContext(ctx, selectReport+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
