// Package model contains domain values passed between layers.
package model

import "time"

// Match holds the parsed facts of a completed fixture as delivered by the
// fixtures provider or the results API. Scores are regulation (or
// after-extra-time) totals; penalty tallies are carried separately and are
// only consulted when PenaltyShootout is true.
type Match struct {
	FixtureID       int64     // provider fixture id, used for idempotency
	LeagueID        int       // resolves through the tournament registry
	LeagueName      string
	Season          int
	Round           string // free-text round label, e.g. "Quarter-finals"
	Status          string // FT, AET, or PEN
	KickoffTime     time.Time
	HomeTeamID      int64
	HomeTeamName    string
	AwayTeamID      int64
	AwayTeamName    string
	HomeScore       int
	AwayScore       int
	HomePenalties   int
	AwayPenalties   int
	PenaltyShootout bool
}

// Team is a tracked national side with its running rating state.
type Team struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Points        float64   `json:"points"`
	MatchesPlayed int       `json:"matches_played"`
	Wins          int       `json:"wins"`
	Draws         int       `json:"draws"`
	Losses        int       `json:"losses"`
	GoalsFor      int       `json:"goals_for"`
	GoalsAgainst  int       `json:"goals_against"`
	UpdatedAt     time.Time `json:"updated_at"`
}
