// Package rating implements the FIFA "SUM" Elo rating calculation for
// national teams.
//
// The model is P = Pbefore + I × (W − We), where I is the match importance
// multiplier, W the actual result in {0, 0.5, 0.75, 1}, and
// We = 1 / (10^(−dr/600) + 1) the expected result for a points gap dr.
// Every function here is pure: no I/O, no shared state, and a total input
// domain; malformed inputs degrade to documented defaults instead of
// failing.
package rating

import (
	"math"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
)

// ratingScale is the points-gap divisor in the expectation formula.
const ratingScale = 600

// Actual-result values, including the penalty-shootout adjustments.
const (
	resultWin     = 1.0
	resultDraw    = 0.5
	resultLoss    = 0.0
	resultPSOWin  = 0.75
	resultPSOLoss = 0.5
)

// Seeding formula constants: Pseeding = 1600 − (rank−1) × 4.
const (
	seedingBasePoints   = 1600
	seedingPointsPerRank = 4
)

// Context describes a fixture at evaluation time.
type Context struct {
	LeagueID        int       // resolves through the tournament registry
	Stage           string    // free-text round label, may be empty
	Knockout        bool      // explicit assertion; OR-ed with stage detection
	PenaltyShootout bool      // the match was decided on penalties
	Kickoff         time.Time // zero value means "timestamp unknown"
}

// Input bundles one team's view of a match for a complete calculation.
type Input struct {
	TeamID         int64
	OpponentID     int64
	TeamPoints     float64
	OpponentPoints float64
	// TeamScore and OpponentScore must already be the penalty-shootout
	// tally when Context.PenaltyShootout is true; regulation ended level,
	// so the regulation score carries no result signal. That substitution
	// is the caller's responsibility.
	TeamScore     int
	OpponentScore int
	Context       Context
}

// Engine computes rating adjustments. It is stateless apart from its
// immutable configuration and is safe for concurrent use.
type Engine struct {
	registry            *tournament.Registry
	outOfWindowFriendly float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithOutOfWindowFriendlyImportance sets the importance multiplier for
// friendlies outside an International Match Calendar window.
//
// The upstream rule set disagrees with itself here: the shared calculator
// used 0.5 while both live ingestion paths used 5. The value is therefore
// configurable rather than hard-coded; 5 is the default pending a product
// decision.
func WithOutOfWindowFriendlyImportance(v float64) Option {
	return func(e *Engine) {
		if v > 0 {
			e.outOfWindowFriendly = v
		}
	}
}

// NewEngine creates an engine backed by the given tournament registry.
func NewEngine(registry *tournament.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:            registry,
		outOfWindowFriendly: ImportanceFriendlyOutOfWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpectedResult returns We = 1 / (10^(−(a−b)/600) + 1), the probability
// of team A earning at least a draw-equivalent outcome. It is strictly
// increasing in the points gap, and ExpectedResult(a,b)+ExpectedResult(b,a)
// is 1 up to floating-point epsilon.
func ExpectedResult(pointsA, pointsB float64) float64 {
	dr := pointsA - pointsB
	return 1 / (math.Pow(10, -dr/ratingScale) + 1)
}

// ActualResult returns W for a team given the final scores.
//
// Precondition: when shootout is true, the scores must be the shootout
// tally, not the regulation score; regulation ended level by definition.
// The shootout loser receives draw credit (0.5) for holding the winner in
// regulation; the shootout winner receives 0.75 instead of the full 1.0.
func ActualResult(teamScore, opponentScore int, shootout bool) float64 {
	switch {
	case teamScore > opponentScore:
		if shootout {
			return resultPSOWin
		}
		return resultWin
	case teamScore < opponentScore:
		if shootout {
			return resultPSOLoss
		}
		return resultLoss
	default:
		return resultDraw
	}
}

// PointsChange computes the rounded points delta for one team.
//
// Knockout protection: in elimination matches a negative weighted outcome
// is overridden to zero, so a favored team that loses a knockout tie (or
// any side whose I×(W−We) comes out negative there) does not shed points.
// Rounding to one decimal, half away from zero, happens strictly last.
func PointsChange(points, opponentPoints, actual, importance float64, knockout bool) (delta float64, protected bool) {
	expected := ExpectedResult(points, opponentPoints)
	raw := importance * (actual - expected)
	if knockout && raw < 0 {
		return 0, true
	}
	return roundDelta(raw), false
}

// CalculateComplete runs the full rating pipeline for one side of a match.
// Call it twice with swapped inputs to rate both teams; the two calls are
// independent and order-insensitive. Note the two deltas need not sum to
// zero: when knockout protection fires for one side only, points are
// created on aggregate.
func (e *Engine) CalculateComplete(in Input) model.Calculation {
	importance := e.MatchImportance(in.Context)
	actual := ActualResult(in.TeamScore, in.OpponentScore, in.Context.PenaltyShootout)
	expected := ExpectedResult(in.TeamPoints, in.OpponentPoints)
	knockout := in.Context.Knockout || IsKnockoutStage(in.Context.Stage)

	raw := importance * (actual - expected)
	change := raw
	protected := false
	if knockout && raw < 0 {
		change = 0
		protected = true
	}
	change = roundDelta(change)

	return model.Calculation{
		ID:                        model.NewCalculationID(),
		TeamID:                    in.TeamID,
		OpponentID:                in.OpponentID,
		PointsBefore:              in.TeamPoints,
		PointsChange:              change,
		PointsAfter:               in.TeamPoints + change,
		ExpectedResult:            expected,
		ActualResult:              actual,
		Importance:                importance,
		AppliedKnockoutProtection: protected,
	}
}

// SeedingPoints returns the initial points for a team entering the table
// at a known world rank: 1600 − (rank−1) × 4.
func SeedingPoints(initialRank int) float64 {
	return seedingBasePoints - float64(initialRank-1)*seedingPointsPerRank
}

// roundDelta rounds to one decimal place, half away from zero.
func roundDelta(x float64) float64 {
	return math.Round(x*10) / 10
}
