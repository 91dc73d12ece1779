// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records per-date processing outcomes in a SQLite database.
//
// The ledger is advisory history for researchers: the scrape's idempotency
// gate is the presence of the output text file, never a ledger row. Deleting
// the database loses nothing but the outcome log.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/fedcorpus/internal/fsutil"
	"github.com/meshintel/fedcorpus/internal/pipeline"
)

const (
	indexDir = "index"
	dbFile   = "corpus.db"
)

// Store manages the outcome ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at outputDir/index/corpus.db,
// creating the schema if it does not exist.
func Open(outputDir string) (*Store, error) {
	dbDir := filepath.Join(outputDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		date TEXT PRIMARY KEY,
		outcome TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		pages INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		processed_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record upserts the latest outcome for a date.
func (s *Store) Record(ctx context.Context, res pipeline.Result) error {
	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcripts (date, outcome, attempts, pages, error, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			outcome=excluded.outcome, attempts=excluded.attempts,
			pages=excluded.pages, error=excluded.error,
			processed_at=excluded.processed_at`,
		res.Date, string(res.Outcome), res.Attempts, res.Pages, errText,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", res.Date, err)
	}
	return nil
}

// Entry is one ledger row.
type Entry struct {
	Date        string `yaml:"date"`
	Outcome     string `yaml:"outcome"`
	Attempts    int    `yaml:"attempts"`
	Pages       int    `yaml:"pages"`
	Error       string `yaml:"error,omitempty"`
	ProcessedAt string `yaml:"processed_at"`
}

// Entries returns all ledger rows ordered by date.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, outcome, attempts, pages, error, processed_at
		 FROM transcripts ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("querying transcripts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Date, &e.Outcome, &e.Attempts, &e.Pages, &e.Error, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportYAML writes all ledger rows to path as a YAML document.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(struct {
		Transcripts []Entry `yaml:"transcripts"`
	}{Transcripts: entries})
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data)
}
