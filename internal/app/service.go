// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/okian/fairway/internal/adapters/garmin"
	"github.com/okian/fairway/internal/adapters/jobs"
	"github.com/okian/fairway/internal/adapters/repository"
	"github.com/okian/fairway/internal/domain/aggregate"
	"github.com/okian/fairway/internal/domain/dedupe"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/rounds"
	"github.com/okian/fairway/internal/domain/types"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

// Service wires the flat-file stores, the tracker client and the pure
// aggregation pipeline behind the HTTP API. The pipeline itself is
// stateless: every read recomputes from the current tables.
type Service struct {
	mu sync.RWMutex

	// Core components
	sessions   repository.SessionStore
	rounds     repository.RoundStore
	tracker    *garmin.Client
	seenRounds dedupe.Deduper
	jobQueue   *jobs.InMemoryQueue
	runner     *jobs.Runner

	// Configuration
	dataDir        string
	basisMetric    string
	jobQueueSize   int
	seenRoundsSize int
	syncLimit      int
	garminBaseURL  string
	garminToken    string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataDir sets the root directory of the flat-file stores.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithBasisMetric sets the metric feeding the consistency index.
func WithBasisMetric(name string) Option {
	return func(s *Service) {
		if model.IsMetric(name) {
			s.basisMetric = name
		}
	}
}

// WithJobQueueSize bounds the background job queue.
func WithJobQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.jobQueueSize = size
		}
	}
}

// WithSeenRoundsSize sets the size of the synced-round dedupe cache.
func WithSeenRoundsSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.seenRoundsSize = size
		}
	}
}

// WithGarminBaseURL points the tracker client at a custom API host.
func WithGarminBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.garminBaseURL = u
		}
	}
}

// WithGarminToken sets the tracker OAuth bearer token.
func WithGarminToken(token string) Option {
	return func(s *Service) {
		s.garminToken = token
	}
}

// WithGarminSyncLimit caps how many recent activities a sync examines.
func WithGarminSyncLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.syncLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:        "data",
		basisMetric:    model.MetricCarry,
		jobQueueSize:   16,
		seenRoundsSize: 10_000,
		syncLimit:      10,
		garminBaseURL:  "https://connectapi.garmin.com",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the stores, loads existing files and launches the
// background job runner.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting range analytics service...")

	sessionStore, err := repository.NewDirSessionStore(
		filepath.Join(s.dataDir, "sessions"),
		repository.WithSessionLogger(s.logger.Named("sessionstore")),
	)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	roundStore, err := repository.NewDirRoundStore(
		filepath.Join(s.dataDir, "garmin_rounds"),
		repository.WithRoundLogger(s.logger.Named("roundstore")),
	)
	if err != nil {
		return fmt.Errorf("round store: %w", err)
	}
	s.sessions = sessionStore
	s.rounds = roundStore

	if err := s.sessions.Reload(ctx); err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	if err := s.rounds.Reload(ctx); err != nil {
		return fmt.Errorf("load rounds: %w", err)
	}

	s.tracker = garmin.NewClient(
		garmin.WithBaseURL(s.garminBaseURL),
		garmin.WithToken(s.garminToken),
		garmin.WithClientLogger(s.logger.Named("garmin")),
	)

	// Seed the dedupe cache with rounds already on disk so a restart does
	// not re-save them.
	s.seenRounds = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.seenRoundsSize))
	for _, id := range s.rounds.RoundIDs(ctx) {
		s.seenRounds.SeenAndRecord(ctx, id)
	}

	s.jobQueue = jobs.NewInMemoryQueue(jobs.WithCapacity(s.jobQueueSize))
	s.runner = jobs.NewRunner(s.jobQueue, jobs.WithRunnerLogger(s.logger.Named("jobs")))
	s.runner.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "range analytics service started",
		logger.String("dataDir", s.dataDir),
		logger.String("basisMetric", s.basisMetric),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping range analytics service...")
	if s.runner != nil {
		if err := s.runner.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "job runner shutdown", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(ctx, "range analytics service stopped")
}

// Sessions lists the loaded practice sessions.
func (s *Service) Sessions(ctx context.Context) []types.SessionInfo {
	infos := s.sessions.Sessions(ctx)
	out := make([]types.SessionInfo, len(infos))
	for i, in := range infos {
		captured := ""
		if !in.CapturedAt.IsZero() {
			captured = in.CapturedAt.Format(time.RFC3339)
		}
		out[i] = types.SessionInfo{
			File:     in.File,
			Label:    in.Label,
			Captured: captured,
			Shots:    in.Shots,
		}
	}
	return out
}

// Aggregates recomputes the per-(session, club) summary table.
// basisOverride names an alternate consistency basis for this call; the
// configured default applies when it is empty or unknown.
func (s *Service) Aggregates(ctx context.Context, basisOverride string) []types.ClubAggregate {
	rows := s.buildAggregates(ctx, basisOverride)

	out := make([]types.ClubAggregate, len(rows))
	for i, r := range rows {
		out[i] = types.ClubAggregate{
			SessionFile:  r.SessionFile,
			SessionLabel: r.SessionLabel,
			Club:         r.Club,
			ClubRank:     r.ClubRank,
			Shots:        r.Shots,
			SmashAvg:     types.Float(r.SmashAvg),
			SmashStd:     types.Float(r.SmashStd),
			TargetSmash:  r.TargetSmash,
			SmashDiff:    types.Float(r.SmashDiff),
			Consistency:  types.Float(r.Consistency),
		}
	}
	return out
}

// Trends recomputes the per-club trend table.
func (s *Service) Trends(ctx context.Context) []types.ClubTrend {
	trendRows := aggregate.Trends(s.buildAggregates(ctx, ""))
	sort.SliceStable(trendRows, func(i, j int) bool {
		if trendRows[i].ClubRank != trendRows[j].ClubRank {
			return trendRows[i].ClubRank < trendRows[j].ClubRank
		}
		return trendRows[i].Club < trendRows[j].Club
	})

	out := make([]types.ClubTrend, len(trendRows))
	for i, r := range trendRows {
		out[i] = types.ClubTrend{
			Club:       r.Club,
			ClubRank:   r.ClubRank,
			Sessions:   r.Sessions,
			FirstSmash: types.Float(r.FirstSmash),
			LastSmash:  types.Float(r.LastSmash),
			Diff:       types.Float(r.Diff),
			Direction:  r.Direction,
		}
	}
	return out
}

// buildAggregates runs the pure pipeline over the current shot table.
func (s *Service) buildAggregates(ctx context.Context, basisOverride string) []aggregate.Row {
	basis := s.basisMetric
	if model.IsMetric(basisOverride) {
		basis = basisOverride
	}

	start := time.Now()
	rows := aggregate.Build(s.sessions.Table(ctx), basis)
	metrics.RecordAggregateRebuild(float64(time.Since(start).Milliseconds()))

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SessionFile != rows[j].SessionFile {
			return rows[i].SessionFile < rows[j].SessionFile
		}
		if rows[i].ClubRank != rows[j].ClubRank {
			return rows[i].ClubRank < rows[j].ClubRank
		}
		return rows[i].Club < rows[j].Club
	})
	return rows
}

// Rounds recomputes the round summary table.
func (s *Service) Rounds(ctx context.Context) []types.RoundSummary {
	summaries := rounds.Summarize(s.rounds.Holes(ctx))
	out := make([]types.RoundSummary, len(summaries))
	for i, r := range summaries {
		out[i] = types.RoundSummary{
			RoundID:     r.RoundID,
			Date:        r.Date,
			Course:      r.Course,
			Holes:       r.Holes,
			TotalPar:    r.TotalPar,
			TotalScore:  r.TotalScore,
			VsPar:       r.VsPar,
			TotalPutts:  r.TotalPutts,
			FairwaysHit: r.FairwaysHit,
			GreensInReg: r.GreensInReg,
		}
	}
	return out
}

// UploadSession persists an uploaded session export. Returns the
// sanitized name the file was stored under.
func (s *Service) UploadSession(ctx context.Context, filename string, data []byte) (string, error) {
	name, err := s.sessions.SaveUpload(ctx, filename, data)
	if err != nil {
		metrics.RecordSessionUploadError()
		return "", err
	}
	metrics.RecordSessionUpload()
	s.logger.Info(ctx, "session uploaded", logger.String("file", name))
	return name, nil
}

// SyncRounds schedules a background tracker sync. Returns false when the
// job queue is full.
func (s *Service) SyncRounds(ctx context.Context) bool {
	ok := s.jobQueue.Enqueue(ctx, jobs.NewJob("garmin-sync", s.runSync))
	if !ok {
		metrics.RecordErrorByComponent("app", "sync_backpressure")
	}
	return ok
}

// runSync pulls recent golf activities, saves rounds not seen before and
// reloads the round table. Rounds without a parseable scorecard are
// skipped, never fatal.
func (s *Service) runSync(ctx context.Context) error {
	activities, err := s.tracker.FetchGolfActivities(ctx, s.syncLimit)
	if err != nil {
		metrics.RecordRoundSyncError()
		return fmt.Errorf("fetch golf activities: %w", err)
	}

	saved := 0
	for _, act := range activities {
		holes := garmin.ExtractHoles(act)
		if len(holes) == 0 {
			s.logger.Warn(ctx, "round without parseable scorecard; skipping",
				logger.String("roundID", act.RoundID()))
			continue
		}

		id := act.RoundID()
		if s.seenRounds.SeenAndRecord(ctx, id) {
			s.logger.Debug(ctx, "round already synced; skipping",
				logger.String("roundID", id))
			continue
		}

		if _, err := s.rounds.SaveRound(ctx, holes); err != nil {
			// Roll back the seen mark so a later sync can retry.
			s.seenRounds.Unrecord(ctx, id)
			metrics.RecordRoundSyncError()
			return fmt.Errorf("save round %s: %w", id, err)
		}
		saved++
	}

	metrics.RecordRoundSync()
	s.logger.Info(ctx, "tracker sync finished",
		logger.Int("activities", len(activities)),
		logger.Int("saved", saved),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"basisMetric": s.basisMetric,
		"dataDir":     s.dataDir,
	}

	if s.started {
		ctx := context.Background()
		table := s.sessions.Table(ctx)
		stats["sessions"] = len(s.sessions.Sessions(ctx))
		stats["shots"] = table.Len()
		stats["rounds"] = len(s.rounds.RoundIDs(ctx))
		stats["jobQueueLength"] = s.jobQueue.Len(ctx)
		stats["seenRounds"] = s.seenRounds.Size()
	}

	return stats
}
