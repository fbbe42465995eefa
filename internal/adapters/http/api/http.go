// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pitchrank/pitchrank/internal/adapters/repository"
	"github.com/pitchrank/pitchrank/internal/app"
	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/rating"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
)

// Entry mirrors the read shape returned by ranking queries.
type Entry = repository.Entry

// Dependencies bundles what the handlers need from the application
// service. Using an interface keeps the handler layer loosely coupled to
// implementations in other packages.
type Dependencies interface {
	Submit(ctx context.Context, m model.Match) (bool, error)
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, teamID int64) (Entry, error)
	Preview(ctx context.Context, homeID, awayID int64, mc rating.Context) (model.Preview, error)
	RecentMatches(ctx context.Context, limit int) []model.ProcessedMatch
	SaveSnapshot(ctx context.Context) (model.Snapshot, error)
	Snapshots(ctx context.Context) []model.Snapshot
	GetStats(ctx context.Context) app.Stats
	Registry() *tournament.Registry
}

// Server wires HTTP routes for the ratings API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	resultsHandler     *ResultsHandler
	rankingsHandler    *RankingsHandler
	rankHandler        *RankHandler
	tournamentsHandler *TournamentsHandler
	previewHandler     *PreviewHandler
	matchesHandler     *MatchesHandler
	snapshotsHandler   *SnapshotsHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, maxRankingsLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		resultsHandler:     NewResultsHandler(deps),
		rankingsHandler:    NewRankingsHandler(deps, maxRankingsLimit),
		rankHandler:        NewRankHandler(deps),
		tournamentsHandler: NewTournamentsHandler(deps.Registry()),
		previewHandler:     NewPreviewHandler(deps),
		matchesHandler:     NewMatchesHandler(deps),
		snapshotsHandler:   NewSnapshotsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandlePostResult, "results"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/tournaments", MetricsMiddleware(s.tournamentsHandler.HandleGetTournaments, "tournaments"))
	mux.HandleFunc("/preview", MetricsMiddleware(s.previewHandler.HandleGetPreview, "preview"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/snapshots", MetricsMiddleware(s.snapshotsHandler.HandleSnapshots, "snapshots"))
}

// matchRequest mirrors the JSON schema for POST /results.
type matchRequest struct {
	FixtureID       int64  `json:"fixture_id"`
	LeagueID        int    `json:"league_id"`
	LeagueName      string `json:"league_name"`
	Season          int    `json:"season"`
	Round           string `json:"round"`
	Status          string `json:"status"`
	KickoffTime     string `json:"kickoff_time"`
	HomeTeamID      int64  `json:"home_team_id"`
	HomeTeamName    string `json:"home_team_name"`
	AwayTeamID      int64  `json:"away_team_id"`
	AwayTeamName    string `json:"away_team_name"`
	HomeScore       int    `json:"home_score"`
	AwayScore       int    `json:"away_score"`
	PenaltyShootout bool   `json:"penalty_shootout"`
	HomePenalties   int    `json:"home_penalties"`
	AwayPenalties   int    `json:"away_penalties"`
}

func (m matchRequest) validate() error {
	switch {
	case m.FixtureID <= 0:
		return errors.New("missing fixture_id")
	case m.HomeTeamID <= 0:
		return errors.New("missing home_team_id")
	case m.AwayTeamID <= 0:
		return errors.New("missing away_team_id")
	case m.HomeTeamID == m.AwayTeamID:
		return errors.New("home and away team must differ")
	case m.HomeScore < 0 || m.AwayScore < 0:
		return errors.New("negative score")
	}
	if m.KickoffTime != "" {
		if _, err := time.Parse(time.RFC3339, m.KickoffTime); err != nil {
			return errors.New("invalid kickoff_time; must be RFC3339")
		}
	}
	if m.PenaltyShootout {
		if m.HomePenalties == m.AwayPenalties {
			return errors.New("penalty shootout requires a decisive tally")
		}
		if m.HomePenalties < 0 || m.AwayPenalties < 0 {
			return errors.New("negative penalty tally")
		}
	}
	return nil
}

// toMatch converts a validated request into a domain match.
func (m matchRequest) toMatch() model.Match {
	kickoff := time.Time{}
	if m.KickoffTime != "" {
		kickoff, _ = time.Parse(time.RFC3339, m.KickoffTime)
	}
	return model.Match{
		FixtureID:       m.FixtureID,
		LeagueID:        m.LeagueID,
		LeagueName:      m.LeagueName,
		Season:          m.Season,
		Round:           m.Round,
		Status:          m.Status,
		KickoffTime:     kickoff,
		HomeTeamID:      m.HomeTeamID,
		HomeTeamName:    m.HomeTeamName,
		AwayTeamID:      m.AwayTeamID,
		AwayTeamName:    m.AwayTeamName,
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		HomePenalties:   m.HomePenalties,
		AwayPenalties:   m.AwayPenalties,
		PenaltyShootout: m.PenaltyShootout,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
