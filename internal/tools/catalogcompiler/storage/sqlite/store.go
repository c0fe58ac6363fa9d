// Package sqlite provides the SQLite-backed build ledger.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/storage/sqlitemigrate"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler/storage"
	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/tools/catalogcompiler/storage/sqlite/migrations"
)

const recordColumns = `id, run_id, language, domain, status, entries, checksum,
       po_path, mo_path, error, started_at, finished_at`

// Store persists build records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the ledger at path, creating it and its schema when needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordBuild inserts one build record and returns its id.
func (s *Store) RecordBuild(ctx context.Context, record storage.BuildRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	runID := strings.TrimSpace(record.RunID)
	language := strings.TrimSpace(record.Language)
	if runID == "" {
		return 0, fmt.Errorf("run id is required")
	}
	if language == "" {
		return 0, fmt.Errorf("language is required")
	}
	switch record.Status {
	case storage.StatusCompiled, storage.StatusFailed:
	default:
		return 0, fmt.Errorf("unknown build status %q", record.Status)
	}
	startedAt := record.StartedAt.UTC()
	finishedAt := record.FinishedAt.UTC()
	if startedAt.IsZero() && finishedAt.IsZero() {
		startedAt = time.Now().UTC()
		finishedAt = startedAt
	} else {
		if startedAt.IsZero() {
			startedAt = finishedAt
		}
		if finishedAt.IsZero() {
			finishedAt = startedAt
		}
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO build_records (
		   run_id, language, domain, status, entries, checksum,
		   po_path, mo_path, error, started_at, finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		language,
		strings.TrimSpace(record.Domain),
		string(record.Status),
		record.Entries,
		record.Checksum,
		record.POPath,
		record.MOPath,
		record.Error,
		toMillis(startedAt),
		toMillis(finishedAt),
	)
	if err != nil {
		if isBuildRecordUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("record build: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record build id: %w", err)
	}
	return id, nil
}

// LatestBuild returns the most recent record for language.
func (s *Store) LatestBuild(ctx context.Context, language string) (storage.BuildRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.BuildRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.BuildRecord{}, fmt.Errorf("storage is not configured")
	}
	language = strings.TrimSpace(language)
	if language == "" {
		return storage.BuildRecord{}, fmt.Errorf("language is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+recordColumns+`
		   FROM build_records
		  WHERE language = ?
		  ORDER BY finished_at DESC, id DESC
		  LIMIT 1`,
		language,
	)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.BuildRecord{}, storage.ErrNotFound
		}
		return storage.BuildRecord{}, fmt.Errorf("latest build: %w", err)
	}
	return record, nil
}

// ListRun returns the records of one run in insertion order.
func (s *Store) ListRun(ctx context.Context, runID string) ([]storage.BuildRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+recordColumns+`
		   FROM build_records
		  WHERE run_id = ?
		  ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run: %w", err)
	}
	defer rows.Close()

	var records []storage.BuildRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list run: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list run: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (storage.BuildRecord, error) {
	var record storage.BuildRecord
	var status string
	var startedAt int64
	var finishedAt int64
	err := row.Scan(
		&record.ID,
		&record.RunID,
		&record.Language,
		&record.Domain,
		&status,
		&record.Entries,
		&record.Checksum,
		&record.POPath,
		&record.MOPath,
		&record.Error,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return storage.BuildRecord{}, err
	}
	record.Status = storage.Status(status)
	record.StartedAt = fromMillis(startedAt)
	record.FinishedAt = fromMillis(finishedAt)
	return record, nil
}

func isBuildRecordUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "build_records.")
}

var _ storage.BuildStore = (*Store)(nil)
