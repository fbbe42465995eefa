// Package worker consumes completed matches and applies rating updates.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/rating"
	"github.com/pitchrank/pitchrank/pkg/logger"
	"github.com/pitchrank/pitchrank/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Rater computes rating adjustments for one side of a match.
type Rater interface {
	CalculateComplete(in rating.Input) model.Calculation
	MatchImportance(mc rating.Context) float64
}

// Updater persists the outcome of a rated match.
type Updater interface {
	GetOrCreate(ctx context.Context, teamID int64, name string) (model.Team, error)
	ApplyMatch(ctx context.Context, pm model.ProcessedMatch) error
}

// Queue defines how workers receive matches.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Match
}

// Worker processes matches until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing matches.
type InMemoryWorker struct {
	queue   Queue
	rater   Rater
	updater Updater
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(queue Queue, rater Rater, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		rater:    rater,
		updater:  updater,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	matchChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case m, ok := <-matchChan:
			if !ok {
				return
			}
			if err := w.processMatch(ctx, m); err != nil {
				w.logger.Error(ctx, "match processing failed",
					logger.Int64("fixture_id", m.FixtureID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processMatch rates both sides of one fixture and persists the result.
func (w *InMemoryWorker) processMatch(ctx context.Context, m model.Match) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	home, err := w.updater.GetOrCreate(ctx, m.HomeTeamID, m.HomeTeamName)
	if err != nil {
		return w.fail(ctx, m, "home team lookup", err)
	}
	away, err := w.updater.GetOrCreate(ctx, m.AwayTeamID, m.AwayTeamName)
	if err != nil {
		return w.fail(ctx, m, "away team lookup", err)
	}

	mc := rating.Context{
		LeagueID:        m.LeagueID,
		Stage:           m.Round,
		PenaltyShootout: m.PenaltyShootout,
		Kickoff:         m.KickoffTime,
	}

	// A shootout match ended level in regulation; the penalty tallies carry
	// the result signal instead of the score.
	homeScore, awayScore := m.HomeScore, m.AwayScore
	if m.PenaltyShootout {
		homeScore, awayScore = m.HomePenalties, m.AwayPenalties
	}

	homeCalc := w.rater.CalculateComplete(rating.Input{
		TeamID: home.ID, OpponentID: away.ID,
		TeamPoints: home.Points, OpponentPoints: away.Points,
		TeamScore: homeScore, OpponentScore: awayScore,
		Context: mc,
	})
	awayCalc := w.rater.CalculateComplete(rating.Input{
		TeamID: away.ID, OpponentID: home.ID,
		TeamPoints: away.Points, OpponentPoints: home.Points,
		TeamScore: awayScore, OpponentScore: homeScore,
		Context: mc,
	})

	pm := model.ProcessedMatch{
		FixtureID:       m.FixtureID,
		LeagueID:        m.LeagueID,
		LeagueName:      m.LeagueName,
		Round:           m.Round,
		KickoffTime:     m.KickoffTime,
		HomeTeamID:      home.ID,
		HomeTeamName:    home.Name,
		AwayTeamID:      away.ID,
		AwayTeamName:    away.Name,
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		PenaltyShootout: m.PenaltyShootout,
		Knockout:        rating.IsKnockoutStage(m.Round),
		Importance:      homeCalc.Importance,
		Home:            homeCalc,
		Away:            awayCalc,
		ProcessedAt:     time.Now().UTC(),
	}

	if err := w.updater.ApplyMatch(ctx, pm); err != nil {
		return w.fail(ctx, m, "apply match", err)
	}

	metrics.RecordMatchProcessed()
	for _, calc := range []model.Calculation{homeCalc, awayCalc} {
		metrics.RecordCalculation()
		metrics.RecordPointsDelta(calc.PointsChange)
		if calc.AppliedKnockoutProtection {
			metrics.RecordKnockoutProtection()
		}
	}

	w.logger.Debug(ctx, "match rated",
		logger.Int64("fixture_id", m.FixtureID),
		logger.Float64("home_change", homeCalc.PointsChange),
		logger.Float64("away_change", awayCalc.PointsChange),
	)
	return nil
}

func (w *InMemoryWorker) fail(ctx context.Context, m model.Match, op string, err error) error {
	metrics.RecordWorkerError()
	metrics.RecordCalculationError()
	metrics.RecordErrorByComponent("worker", op)
	return fmt.Errorf("%s for fixture %d: %w", op, m.FixtureID, err)
}

// Pool manages multiple workers draining one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a worker pool. A non-positive count defaults to a small
// multiple of the CPU count.
func NewPool(workerCount int, queue Queue, rater Rater, updater Updater) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			rater,
			updater,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
