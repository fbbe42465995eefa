package model

import (
	"time"

	"github.com/google/uuid"
)

// Calculation is the engine's output for one team in one match. It is a
// derived, immutable artifact; persisting it is the store's concern.
type Calculation struct {
	ID                        string  `json:"id"`
	TeamID                    int64   `json:"team_id"`
	OpponentID                int64   `json:"opponent_id"`
	PointsBefore              float64 `json:"points_before"`
	PointsChange              float64 `json:"points_change"`
	PointsAfter               float64 `json:"points_after"`
	ExpectedResult            float64 `json:"expected_result"`
	ActualResult              float64 `json:"actual_result"`
	Importance                float64 `json:"importance"`
	AppliedKnockoutProtection bool    `json:"applied_knockout_protection"`
}

// NewCalculationID returns a fresh audit-record identifier.
func NewCalculationID() string {
	return uuid.NewString()
}

// ProcessedMatch is the audit row written after both sides of a match have
// been rated.
type ProcessedMatch struct {
	FixtureID       int64       `json:"fixture_id"`
	LeagueID        int         `json:"league_id"`
	LeagueName      string      `json:"league_name"`
	Round           string      `json:"round"`
	KickoffTime     time.Time   `json:"kickoff_time"`
	HomeTeamID      int64       `json:"home_team_id"`
	HomeTeamName    string      `json:"home_team_name"`
	AwayTeamID      int64       `json:"away_team_id"`
	AwayTeamName    string      `json:"away_team_name"`
	HomeScore       int         `json:"home_score"`
	AwayScore       int         `json:"away_score"`
	PenaltyShootout bool        `json:"penalty_shootout"`
	Knockout        bool        `json:"knockout"`
	Importance      float64     `json:"importance"`
	Home            Calculation `json:"home"`
	Away            Calculation `json:"away"`
	ProcessedAt     time.Time   `json:"processed_at"`
}

// Outcome is one hypothetical result line in a pre-match preview.
type Outcome struct {
	HomeChange float64 `json:"home_change"`
	AwayChange float64 `json:"away_change"`
}

// Preview shows what each possible result of an upcoming fixture would do
// to both teams' points.
type Preview struct {
	HomeTeamID     int64   `json:"home_team_id"`
	AwayTeamID     int64   `json:"away_team_id"`
	HomePoints     float64 `json:"home_points"`
	AwayPoints     float64 `json:"away_points"`
	ExpectedResult float64 `json:"expected_result"` // home side's We
	Importance     float64 `json:"importance"`
	HomeWin        Outcome `json:"home_win"`
	Draw           Outcome `json:"draw"`
	AwayWin        Outcome `json:"away_win"`
}

// SnapshotEntry is one row of a ranking snapshot.
type SnapshotEntry struct {
	Rank   int     `json:"rank"`
	TeamID int64   `json:"team_id"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// Snapshot captures the full ranking at a point in time.
type Snapshot struct {
	TakenAt time.Time       `json:"taken_at"`
	Entries []SnapshotEntry `json:"entries"`
}
