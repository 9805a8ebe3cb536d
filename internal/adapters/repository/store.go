// Package repository implements the flat-file session and round stores.
// Sessions are one CSV or XLSX file per practice session; rounds are one
// CSV per synced scorecard. Files are the source of truth: a reload
// rebuilds the in-memory tables from scratch.
package repository

import (
	"context"
	"time"

	"github.com/okian/fairway/internal/domain/model"
)

// SessionInfo describes one loaded session file.
type SessionInfo struct {
	File       string
	Label      string
	CapturedAt time.Time // file modification time; zero when stat failed
	Shots      int
}

// SessionStore provides access to the practice-session shot table.
type SessionStore interface {
	// Reload rebuilds the in-memory table from the session directory.
	Reload(ctx context.Context) error

	// Table returns the current shot table. The returned table must not
	// be mutated by callers.
	Table(ctx context.Context) *model.ShotTable

	// Sessions lists the loaded sessions.
	Sessions(ctx context.Context) []SessionInfo

	// SaveUpload persists an uploaded session file and reloads. Returns
	// the sanitized file name it was stored under.
	SaveUpload(ctx context.Context, filename string, data []byte) (string, error)
}

// RoundStore provides access to synced golf-round scorecards.
type RoundStore interface {
	// Reload rebuilds the in-memory hole table from the round directory.
	Reload(ctx context.Context) error

	// Holes returns every loaded hole row.
	Holes(ctx context.Context) []model.HoleScore

	// SaveRound persists one round's holes as a CSV and reloads. Returns
	// the file name it was stored under.
	SaveRound(ctx context.Context, holes []model.HoleScore) (string, error)

	// RoundIDs returns the IDs of every loaded round.
	RoundIDs(ctx context.Context) []string
}
