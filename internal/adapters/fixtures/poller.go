package fixtures

import (
	"context"
	"sync"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/pkg/logger"
	"github.com/pitchrank/pitchrank/pkg/metrics"
)

// Sink receives completed matches discovered by the poller. Submit
// reports accepted=false with a nil error for a fixture that was already
// taken in earlier; the poller treats that as routine overlap.
type Sink interface {
	Submit(ctx context.Context, m model.Match) (accepted bool, err error)
}

// Poller periodically fetches completed fixtures for a set of leagues and
// feeds them to a sink. Consecutive polls overlap on purpose: the sink's
// idempotency guarantee absorbs repeats, and the overlap covers fixtures
// whose final result arrived late.
type Poller struct {
	client   *Client
	sink     Sink
	leagues  []int
	interval time.Duration
	lookback time.Duration
	logger   logger.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// PollerOption applies a configuration option to the Poller.
type PollerOption func(*Poller)

// WithLeagues sets the league ids to poll.
func WithLeagues(ids []int) PollerOption {
	return func(p *Poller) {
		if len(ids) > 0 {
			p.leagues = ids
		}
	}
}

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLookback sets how far back completed fixtures are requested.
func WithLookback(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.lookback = d
		}
	}
}

// WithPollerLogger sets a custom logger for the poller.
func WithPollerLogger(l logger.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPoller creates a poller over the given client and sink.
func NewPoller(client *Client, sink Sink, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		sink:     sink,
		interval: 30 * time.Minute,
		lookback: 30 * 24 * time.Hour,
		logger:   logger.Get().Named("fixtures-poller"),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the poll loop. The first poll runs immediately.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.pollOnce(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopChan:
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop halts the poll loop and waits for an in-flight poll to finish.
func (p *Poller) Stop() {
	select {
	case <-p.stopChan:
	default:
		close(p.stopChan)
	}
	p.wg.Wait()
}

// pollOnce fetches every configured league once.
func (p *Poller) pollOnce(ctx context.Context) {
	metrics.RecordFixturesPoll()

	to := time.Now().UTC()
	from := to.Add(-p.lookback)

	var submitted, duplicates int
	for _, leagueID := range p.leagues {
		matches, err := p.client.CompletedFixtures(ctx, leagueID, from, to)
		if err != nil {
			metrics.RecordFixturesPollError()
			p.logger.Warn(ctx, "fixtures fetch failed",
				logger.Int("league_id", leagueID),
				logger.Error(err),
			)
			continue
		}

		for _, m := range matches {
			accepted, err := p.sink.Submit(ctx, m)
			switch {
			case err != nil:
				p.logger.Warn(ctx, "fixture rejected by sink",
					logger.Int64("fixture_id", m.FixtureID),
					logger.Error(err),
				)
			case accepted:
				submitted++
			default:
				duplicates++
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		default:
		}
	}

	p.logger.Info(ctx, "fixtures poll complete",
		logger.Int("leagues", len(p.leagues)),
		logger.Int("submitted", submitted),
		logger.Int("duplicates", duplicates),
	)
}
