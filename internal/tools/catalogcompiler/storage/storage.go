// Package storage defines the build ledger: one record per language per
// compiler run.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates that no build record matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a second record for the same run and language.
	ErrAlreadyExists = errors.New("record already exists")
)

// Status is the outcome of one language build.
type Status string

const (
	StatusCompiled Status = "compiled"
	StatusFailed   Status = "failed"
)

// BuildRecord describes the build of one language within a run.
type BuildRecord struct {
	ID       int64
	RunID    string
	Language string
	Domain   string
	Status   Status
	// Entries counts translations, the metadata entry excluded.
	Entries int
	// Checksum is the hex SHA-256 of the compiled table, empty on failure.
	Checksum   string
	POPath     string
	MOPath     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// BuildStore persists build records.
type BuildStore interface {
	RecordBuild(ctx context.Context, record BuildRecord) (int64, error)
	LatestBuild(ctx context.Context, language string) (BuildRecord, error)
	ListRun(ctx context.Context, runID string) ([]BuildRecord, error)
}
