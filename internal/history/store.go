// Package history archives batch runs into a SQLite database so
// comparison outcomes can be reviewed after the fact. Recording is
// optional; the comparison core never depends on it.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/edimatch/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Run is one archived batch run.
type Run struct {
	ID        string
	StartedAt time.Time
	SourceDir string
	TargetDir string
	PairCount int
	Excluded  int
	Failed    int
}

// PairRecord is one archived pair verdict.
type PairRecord struct {
	RunID        string
	Key          string
	SourceFile   string
	TargetFile   string
	HeaderMatch  bool
	GroupMatch   bool
	PayloadMatch bool
}

// Store manages the history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (and if needed creates) the history database at
// dbPath, initializing the schema. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing under concurrent batch invocations.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun archives a batch result set and returns the generated run
// ID. The run row and all pair rows are written in one transaction.
func (s *Store) RecordRun(sourceDir, targetDir string, startedAt time.Time, set *models.BatchResultSet) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO runs (id, started_at, source_dir, target_dir, pair_count, excluded_count, failed_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, startedAt, sourceDir, targetDir,
		len(set.Summaries), set.Excluded(), set.Failed())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	keys := make([]string, 0, len(set.Results))
	for key := range set.Results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	stmt, err := tx.Prepare(
		`INSERT INTO pair_results (run_id, pair_key, source_file, target_file, header_match, group_match, payload_match)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare pair insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range keys {
		r := set.Results[key]
		if _, err := stmt.Exec(runID, key, r.File1, r.File2,
			r.HeaderMatch, r.GroupMatch, r.PayloadMatch); err != nil {
			return "", fmt.Errorf("insert pair %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, started_at, source_dir, target_dir, pair_count, excluded_count, failed_count
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.SourceDir, &r.TargetDir,
			&r.PairCount, &r.Excluded, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// PairsForRun returns the archived pair verdicts for a run, ordered by
// pairing key.
func (s *Store) PairsForRun(runID string) ([]PairRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, pair_key, source_file, target_file, header_match, group_match, payload_match
		 FROM pair_results WHERE run_id = ? ORDER BY pair_key`, runID)
	if err != nil {
		return nil, fmt.Errorf("query pairs: %w", err)
	}
	defer rows.Close()

	var pairs []PairRecord
	for rows.Next() {
		var p PairRecord
		if err := rows.Scan(&p.RunID, &p.Key, &p.SourceFile, &p.TargetFile,
			&p.HeaderMatch, &p.GroupMatch, &p.PayloadMatch); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
