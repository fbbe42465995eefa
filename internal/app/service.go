// Package app provides the core rating service that implements the
// dependencies required by the HTTP API and the fixtures poller.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	matchqueue "github.com/pitchrank/pitchrank/internal/adapters/mq/queue"
	workerpool "github.com/pitchrank/pitchrank/internal/adapters/mq/worker"
	"github.com/pitchrank/pitchrank/internal/adapters/repository"
	"github.com/pitchrank/pitchrank/internal/domain/dedupe"
	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/rating"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
	"github.com/pitchrank/pitchrank/pkg/logger"
	"github.com/pitchrank/pitchrank/pkg/metrics"
)

// Service owns the rating pipeline: registry, engine, queue, workers, and
// the team store.
type Service struct {
	mu sync.RWMutex

	registry   *tournament.Registry
	engine     *rating.Engine
	store      repository.Store
	treapStore *repository.TreapStore
	deduper    dedupe.Deduper
	queue      matchqueue.Queue
	pool       *workerpool.Pool

	workerCount         int
	queueSize           int
	dedupeSize          int
	initialRating       float64
	outOfWindowFriendly float64
	snapshotInterval    time.Duration

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of match-processing workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the match queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the fixture dedupe cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithInitialRating sets the points assigned to newly tracked teams.
func WithInitialRating(points float64) Option {
	return func(s *Service) {
		if points > 0 {
			s.initialRating = points
		}
	}
}

// WithOutOfWindowFriendlyImportance sets the importance multiplier for
// friendlies outside an International Match Calendar window.
func WithOutOfWindowFriendlyImportance(v float64) Option {
	return func(s *Service) {
		if v > 0 {
			s.outOfWindowFriendly = v
		}
	}
}

// WithSnapshotInterval sets how often the store snapshots the ranking.
func WithSnapshotInterval(d time.Duration) Option {
	return func(s *Service) {
		s.snapshotInterval = d
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		registry:            tournament.New(),
		workerCount:         runtime.NumCPU() * 2,
		queueSize:           10_000,
		dedupeSize:          100_000,
		initialRating:       1500,
		outOfWindowFriendly: rating.ImportanceFriendlyOutOfWindow,
		snapshotInterval:    time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	s.logger.Info(ctx, "starting rating service")

	s.engine = rating.NewEngine(s.registry,
		rating.WithOutOfWindowFriendlyImportance(s.outOfWindowFriendly),
	)
	s.treapStore = repository.NewTreapStore(ctx,
		repository.WithInitialRating(s.initialRating),
		repository.WithSnapshotInterval(s.snapshotInterval),
	)
	s.store = s.treapStore
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = matchqueue.NewInMemoryQueue(
		matchqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.engine, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.startedAt = time.Now().UTC()
	s.logger.Info(ctx, "rating service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
		logger.Float64("initial_rating", s.initialRating),
	)
	return nil
}

// Stop gracefully shuts down the service. Queued matches are drained
// before the workers exit.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(ctx, "stopping rating service")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx) // closes the queue first
	}
	if s.treapStore != nil {
		_ = s.treapStore.Close()
	}

	s.started = false
	s.logger.Info(ctx, "rating service stopped")
}

// Submit offers a completed match for asynchronous rating.
//
// Returns (true, nil) when the match was queued, (false, nil) when the
// fixture was already taken in, and (false, err) when the match is
// invalid or the queue is saturated. A rejected match is unrecorded so a
// retry can succeed.
func (s *Service) Submit(ctx context.Context, m model.Match) (bool, error) {
	if !s.isStarted() {
		return false, ErrNotStarted
	}
	if m.FixtureID <= 0 || m.HomeTeamID <= 0 || m.AwayTeamID <= 0 || m.HomeTeamID == m.AwayTeamID {
		return false, fmt.Errorf("fixture %d: %w", m.FixtureID, ErrInvalidMatch)
	}

	if s.deduper.SeenAndRecord(ctx, m.FixtureID) {
		metrics.RecordMatchDuplicate()
		s.logger.Debug(ctx, "duplicate fixture skipped",
			logger.Int64("fixture_id", m.FixtureID),
		)
		return false, nil
	}

	if !s.queue.Enqueue(ctx, m) {
		s.deduper.Unrecord(ctx, m.FixtureID)
		return false, ErrQueueFull
	}
	return true, nil
}

// TopN returns the top N ranking entries.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.store.TopN(ctx, n)
}

// Rank returns the rank and state for one team.
func (s *Service) Rank(ctx context.Context, teamID int64) (repository.Entry, error) {
	if !s.isStarted() {
		return repository.Entry{}, ErrNotStarted
	}
	return s.store.Rank(ctx, teamID)
}

// Registry exposes the tournament registry for read-only queries.
func (s *Service) Registry() *tournament.Registry {
	return s.registry
}

// RecentMatches returns up to limit processed matches, newest first.
func (s *Service) RecentMatches(ctx context.Context, limit int) []model.ProcessedMatch {
	if !s.isStarted() {
		return nil
	}
	return s.store.RecentMatches(ctx, limit)
}

// SaveSnapshot captures the current ranking.
func (s *Service) SaveSnapshot(ctx context.Context) (model.Snapshot, error) {
	if !s.isStarted() {
		return model.Snapshot{}, ErrNotStarted
	}
	return s.store.SaveSnapshot(ctx)
}

// Snapshots returns the snapshot history, oldest first.
func (s *Service) Snapshots(ctx context.Context) []model.Snapshot {
	if !s.isStarted() {
		return nil
	}
	return s.store.Snapshots(ctx)
}

// Preview computes what each possible result of an upcoming fixture would
// do to both teams' points. Unknown teams are previewed at the initial
// rating without being created.
func (s *Service) Preview(ctx context.Context, homeID, awayID int64, mc rating.Context) (model.Preview, error) {
	if !s.isStarted() {
		return model.Preview{}, ErrNotStarted
	}
	if homeID <= 0 || awayID <= 0 || homeID == awayID {
		return model.Preview{}, ErrInvalidMatch
	}

	homePoints := s.pointsOrInitial(ctx, homeID)
	awayPoints := s.pointsOrInitial(ctx, awayID)

	importance := s.engine.MatchImportance(mc)
	knockout := mc.Knockout || rating.IsKnockoutStage(mc.Stage)

	outcome := func(homeActual, awayActual float64) model.Outcome {
		homeDelta, _ := rating.PointsChange(homePoints, awayPoints, homeActual, importance, knockout)
		awayDelta, _ := rating.PointsChange(awayPoints, homePoints, awayActual, importance, knockout)
		return model.Outcome{HomeChange: homeDelta, AwayChange: awayDelta}
	}

	return model.Preview{
		HomeTeamID:     homeID,
		AwayTeamID:     awayID,
		HomePoints:     homePoints,
		AwayPoints:     awayPoints,
		ExpectedResult: rating.ExpectedResult(homePoints, awayPoints),
		Importance:     importance,
		HomeWin:        outcome(1, 0),
		Draw:           outcome(0.5, 0.5),
		AwayWin:        outcome(0, 1),
	}, nil
}

func (s *Service) pointsOrInitial(ctx context.Context, teamID int64) float64 {
	if team, err := s.store.Get(ctx, teamID); err == nil {
		return team.Points
	}
	return s.initialRating
}

// Stats describes the service state for the stats endpoint.
type Stats struct {
	Started       bool    `json:"started"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	WorkerCount   int     `json:"worker_count"`
	QueueLength   int     `json:"queue_length"`
	QueueCapacity int     `json:"queue_capacity"`
	TrackedTeams  int     `json:"tracked_teams"`
	SeenFixtures  int64   `json:"seen_fixtures"`
	Snapshots     int     `json:"snapshots"`
	Tournaments   int     `json:"tournaments"`
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:     s.started,
		WorkerCount: s.workerCount,
		Tournaments: s.registry.Count(),
	}
	if !s.started {
		return stats
	}

	stats.UptimeSeconds = time.Since(s.startedAt).Seconds()
	stats.QueueLength = s.queue.Len(ctx)
	stats.QueueCapacity = s.queueSize
	stats.TrackedTeams = s.store.Count(ctx)
	stats.SeenFixtures = s.deduper.Size()
	stats.Snapshots = len(s.store.Snapshots(ctx))

	metrics.UpdateQueueSize(stats.QueueLength)
	metrics.UpdateStoreTeams(stats.TrackedTeams)
	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
