package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ithacaplayer/bankgen/internal/bank"
	"github.com/ithacaplayer/bankgen/internal/paths"

	_ "modernc.org/sqlite"
)

// Store records generation runs in a SQLite database. Recording is
// best-effort from the caller's point of view: the generator never fails a
// run because the manifest could not be written.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the manifest database location under the bankgen
// data directory.
func DefaultPath() string {
	return filepath.Join(paths.DataDir(), paths.ManifestFileName)
}

// Open opens (or creates) the manifest database at path, creating the
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("manifest: pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    started    TEXT    NOT NULL,
    finished   TEXT    NOT NULL,
    output_dir TEXT    NOT NULL,
    file_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS files (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    name    TEXT    NOT NULL,
    note    INTEGER NOT NULL,
    tier    INTEGER NOT NULL,
    rate_hz INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started DESC);
CREATE INDEX IF NOT EXISTS idx_files_run    ON files(run_id);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("manifest: schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts one completed run and its files in a single transaction.
func (s *Store) Record(started, finished time.Time, res bank.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row, err := tx.Exec(
		`INSERT INTO runs (started, finished, output_dir, file_count) VALUES (?, ?, ?, ?)`,
		started.Format(time.RFC3339), finished.Format(time.RFC3339), res.Dir, len(res.Files),
	)
	if err != nil {
		return fmt.Errorf("manifest: run: %w", err)
	}
	runID, err := row.LastInsertId()
	if err != nil {
		return err
	}

	for _, f := range res.Files {
		if _, err := tx.Exec(
			`INSERT INTO files (run_id, name, note, tier, rate_hz) VALUES (?, ?, ?, ?, ?)`,
			runID, f.Name, f.Note, f.Tier, f.RateHz,
		); err != nil {
			return fmt.Errorf("manifest: file %s: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// Run is one recorded generation run.
type Run struct {
	Started   time.Time
	Finished  time.Time
	OutputDir string
	FileCount int
}

// Runs returns the n most recent runs, newest first. n <= 0 returns all.
func (s *Store) Runs(n int) ([]Run, error) {
	query := `SELECT started, finished, output_dir, file_count FROM runs ORDER BY id DESC`
	var args []any
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var startedStr, finishedStr, dir string
		var count int
		if err := rows.Scan(&startedStr, &finishedStr, &dir, &count); err != nil {
			return nil, err
		}
		started, err := time.Parse(time.RFC3339, startedStr)
		if err != nil {
			continue
		}
		finished, err := time.Parse(time.RFC3339, finishedStr)
		if err != nil {
			continue
		}
		runs = append(runs, Run{
			Started:   started,
			Finished:  finished,
			OutputDir: dir,
			FileCount: count,
		})
	}
	return runs, rows.Err()
}

// FileCount returns the number of file rows recorded for the most recent run,
// or 0 if no runs exist.
func (s *Store) FileCount() (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM files WHERE run_id = (SELECT MAX(id) FROM runs)`,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
