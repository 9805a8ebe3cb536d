package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

// roundHeader is the normalized round CSV schema, one row per hole.
var roundHeader = []string{
	"round_id", "date", "course_name", "hole",
	"par", "score", "putts", "fairway", "green", "drive_distance",
}

var slugStripper = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases text and collapses non-alphanumeric runs to dashes,
// for use in round file names.
func Slugify(text string) string {
	return strings.Trim(slugStripper.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// DirRoundStore implements RoundStore over a directory of round CSVs.
type DirRoundStore struct {
	dir string

	mu    sync.RWMutex
	holes []model.HoleScore

	logger logger.Logger
}

// RoundOption applies a configuration option to the DirRoundStore.
type RoundOption func(*DirRoundStore)

// WithRoundLogger sets a custom logger for the store.
func WithRoundLogger(l logger.Logger) RoundOption {
	return func(s *DirRoundStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewDirRoundStore creates a round store rooted at dir, creating the
// directory when missing.
func NewDirRoundStore(dir string, opts ...RoundOption) (*DirRoundStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create round dir: %w", err)
	}
	s := &DirRoundStore{
		dir:    dir,
		logger: logger.Get().Named("roundstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reload rebuilds the in-memory hole table from every round CSV on disk.
func (s *DirRoundStore) Reload(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read round dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var holes []model.HoleScore
	roundCount := 0
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn(ctx, "skipping unreadable round file",
				logger.String("file", name), logger.Error(err))
			metrics.RecordErrorByComponent("roundstore", "read_failed")
			continue
		}
		parsed, err := parseRoundCSV(data)
		if err != nil {
			s.logger.Warn(ctx, "skipping unparseable round file",
				logger.String("file", name), logger.Error(err))
			metrics.RecordErrorByComponent("roundstore", "parse_failed")
			continue
		}
		if len(parsed) > 0 {
			roundCount++
		}
		holes = append(holes, parsed...)
	}

	s.mu.Lock()
	s.holes = holes
	s.mu.Unlock()

	metrics.UpdateRoundsLoaded(roundCount)
	s.logger.Info(ctx, "rounds reloaded",
		logger.Int("rounds", roundCount),
		logger.Int("holes", len(holes)),
	)
	return nil
}

// Holes returns every loaded hole row.
func (s *DirRoundStore) Holes(_ context.Context) []model.HoleScore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HoleScore, len(s.holes))
	copy(out, s.holes)
	return out
}

// RoundIDs returns the distinct IDs of every loaded round.
func (s *DirRoundStore) RoundIDs(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var ids []string
	for _, h := range s.holes {
		if _, ok := seen[h.RoundID]; !ok {
			seen[h.RoundID] = struct{}{}
			ids = append(ids, h.RoundID)
		}
	}
	return ids
}

// SaveRound persists one round's holes as
// <date>_<course-slug>_<round-id>.csv and reloads.
func (s *DirRoundStore) SaveRound(ctx context.Context, holes []model.HoleScore) (string, error) {
	if len(holes) == 0 {
		return "", ErrEmptyRound
	}

	first := holes[0]
	name := first.Date + "_" + first.RoundID + ".csv"
	if slug := Slugify(first.Course); slug != "" {
		name = first.Date + "_" + slug + "_" + first.RoundID + ".csv"
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(roundHeader)
	for _, h := range holes {
		_ = w.Write([]string{
			h.RoundID,
			h.Date,
			h.Course,
			strconv.Itoa(h.Hole),
			formatCell(h.Par),
			formatCell(h.Score),
			formatCell(h.Putts),
			formatBool(h.FairwayHit),
			formatBool(h.GreenInReg),
			formatCell(h.DriveDistance),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("encode round csv: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write round file: %w", err)
	}

	if err := s.Reload(ctx); err != nil {
		return "", err
	}
	metrics.RecordRoundSaved()
	return name, nil
}

// parseRoundCSV reads a normalized round CSV back into hole rows.
func parseRoundCSV(data []byte) ([]model.HoleScore, error) {
	records, err := readCSV(data)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	idx := make(map[string]int)
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cell := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	holes := make([]model.HoleScore, 0, len(records)-1)
	for _, rec := range records[1:] {
		h := model.NewHoleScore()
		h.RoundID = strings.TrimSpace(cell(rec, "round_id"))
		h.Date = strings.TrimSpace(cell(rec, "date"))
		h.Course = strings.TrimSpace(cell(rec, "course_name"))
		h.Hole = int(intCell(cell(rec, "hole")))
		h.Par = parseCell(cell(rec, "par"))
		h.Score = parseCell(cell(rec, "score"))
		h.Putts = parseCell(cell(rec, "putts"))
		h.FairwayHit = parseBool(cell(rec, "fairway"))
		h.GreenInReg = parseBool(cell(rec, "green"))
		h.DriveDistance = parseCell(cell(rec, "drive_distance"))
		holes = append(holes, h)
	}
	return holes, nil
}

func intCell(cell string) int64 {
	v := parseCell(cell)
	if math.IsNaN(v) {
		return 0
	}
	return int64(v)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func parseBool(cell string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(cell))
	if err != nil {
		return nil
	}
	return &v
}
