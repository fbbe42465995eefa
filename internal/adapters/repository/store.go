// Package repository defines the team ratings store interface and errors.
package repository

import (
	"context"

	"github.com/pitchrank/pitchrank/internal/domain/model"
)

// Entry is one ranking row: a team together with its current rank.
type Entry struct {
	Rank int        `json:"rank"`
	Team model.Team `json:"team"`
}

// Store provides read/write access to the rating state.
type Store interface {
	// GetOrCreate returns the team, creating it at the initial rating if it
	// is not yet tracked. A non-empty name refreshes a stale stored name.
	GetOrCreate(ctx context.Context, teamID int64, name string) (model.Team, error)

	// Get returns the team or ErrNotFound.
	Get(ctx context.Context, teamID int64) (model.Team, error)

	// ApplyMatch applies both sides' rating calculations, updates each
	// team's played/won/drawn/lost and goal tallies, and appends the match
	// to the audit log. Both teams must already be tracked.
	ApplyMatch(ctx context.Context, pm model.ProcessedMatch) error

	// Rank returns the team's current rank and state.
	// Returns ErrNotFound if the team is unknown.
	Rank(ctx context.Context, teamID int64) (Entry, error)

	// TopN returns the top-N teams ordered by points desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of tracked teams.
	Count(ctx context.Context) int

	// RecentMatches returns up to limit audit rows, newest first.
	RecentMatches(ctx context.Context, limit int) []model.ProcessedMatch

	// SaveSnapshot captures the full ranking and appends it to the
	// snapshot history.
	SaveSnapshot(ctx context.Context) (model.Snapshot, error)

	// Snapshots returns the snapshot history, oldest first.
	Snapshots(ctx context.Context) []model.Snapshot
}
