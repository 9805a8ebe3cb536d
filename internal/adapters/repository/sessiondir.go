package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/session"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

// uploadNameSanitizer strips anything outside letters, digits, dot,
// underscore and dash from uploaded file names.
var uploadNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// DirSessionStore implements SessionStore over a directory of session
// exports. Re-uploading a file name overwrites the previous session.
type DirSessionStore struct {
	dir string

	mu       sync.RWMutex
	table    *model.ShotTable
	sessions []SessionInfo

	logger logger.Logger
}

// SessionOption applies a configuration option to the DirSessionStore.
type SessionOption func(*DirSessionStore)

// WithSessionLogger sets a custom logger for the store.
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(s *DirSessionStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewDirSessionStore creates a session store rooted at dir, creating the
// directory when missing.
func NewDirSessionStore(dir string, opts ...SessionOption) (*DirSessionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	s := &DirSessionStore{
		dir:    dir,
		table:  model.NewShotTable(),
		logger: logger.Get().Named("sessionstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reload rebuilds the in-memory table from every session file on disk,
// sorted by name for deterministic row order. Files missing the club
// column are skipped with a logged error, never a failure.
func (s *DirSessionStore) Reload(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	table := model.NewShotTable()
	infos := make([]SessionInfo, 0, len(names))

	for _, name := range names {
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn(ctx, "skipping unreadable session file",
				logger.String("file", name), logger.Error(err))
			metrics.RecordErrorByComponent("sessionstore", "read_failed")
			continue
		}

		records, err := readSessionFile(name, data)
		if err != nil {
			s.logger.Warn(ctx, "skipping unparseable session file",
				logger.String("file", name), logger.Error(err))
			metrics.RecordErrorByComponent("sessionstore", "parse_failed")
			continue
		}

		shots, columns, err := parseShotRecords(records)
		if err != nil {
			s.logger.Error(ctx, "session file has no club column; skipping",
				logger.String("file", name))
			metrics.RecordErrorByComponent("sessionstore", "missing_club")
			continue
		}

		label := session.Label(name)
		captured := fileModTime(path)
		for i := range shots {
			shots[i].SessionFile = name
			shots[i].SessionLabel = label
			shots[i].CapturedAt = captured
		}

		table.AddColumns(columns...)
		table.Append(shots...)
		infos = append(infos, SessionInfo{
			File:       name,
			Label:      label,
			CapturedAt: captured,
			Shots:      len(shots),
		})
	}

	s.mu.Lock()
	s.table = table
	s.sessions = infos
	s.mu.Unlock()

	metrics.UpdateSessionsLoaded(len(infos))
	metrics.UpdateShotsLoaded(table.Len())
	s.logger.Info(ctx, "sessions reloaded",
		logger.Int("sessions", len(infos)),
		logger.Int("shots", table.Len()),
	)
	return nil
}

// Table returns the current shot table.
func (s *DirSessionStore) Table(_ context.Context) *model.ShotTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Sessions lists the loaded sessions.
func (s *DirSessionStore) Sessions(_ context.Context) []SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SessionInfo, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// SaveUpload persists an uploaded session file under a sanitized name and
// reloads the table. The upload must parse and carry a club column before
// anything is written.
func (s *DirSessionStore) SaveUpload(ctx context.Context, filename string, data []byte) (string, error) {
	name := uploadNameSanitizer.ReplaceAllString(filepath.Base(filename), "_")

	records, err := readSessionFile(name, data)
	if err != nil {
		return "", err
	}
	if _, _, err := parseShotRecords(records); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write session file: %w", err)
	}

	if err := s.Reload(ctx); err != nil {
		return "", err
	}
	return name, nil
}

// fileModTime is the session capture-time proxy: the export is written
// when the range session ends.
func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
