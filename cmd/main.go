package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pitchrank/pitchrank/internal/adapters/fixtures"
	"github.com/pitchrank/pitchrank/internal/adapters/http/api"
	"github.com/pitchrank/pitchrank/internal/app"
	"github.com/pitchrank/pitchrank/internal/config"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
	"github.com/pitchrank/pitchrank/pkg/logger"
	"github.com/pitchrank/pitchrank/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics;
	// we collect our own custom system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.MatchQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithInitialRating(cfg.InitialRating),
		app.WithOutOfWindowFriendlyImportance(cfg.OutOfWindowFriendlyImportance),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop(context.Background())

	go startSystemMetricsUpdater(ctx)

	// Poll the fixtures provider only when a token is configured; the
	// ingest endpoint keeps working either way.
	var poller *fixtures.Poller
	if cfg.FixturesAPIToken != "" {
		poller = startFixturesPoller(ctx, cfg, svc, log)
		defer poller.Stop()
	} else {
		log.Info(ctx, "fixtures polling disabled; no API token configured")
	}

	mux := http.NewServeMux()
	api.NewServer(svc, cfg.MaxRankingsLimit).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startFixturesPoller wires the provider client and poller against every
// league the registry tracks.
func startFixturesPoller(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *fixtures.Poller {
	clientOpts := []fixtures.ClientOption{fixtures.WithLogger(log)}
	if cfg.FixturesBaseURL != "" {
		clientOpts = append(clientOpts, fixtures.WithBaseURL(cfg.FixturesBaseURL))
	}
	client := fixtures.NewClient(cfg.FixturesAPIToken, cfg.FixturesRequestsPerMinute, clientOpts...)

	poller := fixtures.NewPoller(client, svc,
		fixtures.WithLeagues(tournament.New().LeagueIDs()),
		fixtures.WithInterval(time.Duration(cfg.FixturesPollIntervalMinutes)*time.Minute),
		fixtures.WithLookback(time.Duration(cfg.FixturesLookbackDays)*24*time.Hour),
		fixtures.WithPollerLogger(log),
	)
	poller.Start(ctx)
	return poller
}

// startSystemMetricsUpdater periodically publishes process-level metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
