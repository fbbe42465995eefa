package rating_test

import (
	"math"
	"testing"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/rating"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
	"github.com/smartystreets/goconvey/convey"
)

func TestExpectedResult(t *testing.T) {
	convey.Convey("Given the expectation formula", t, func() {
		convey.Convey("Then equal teams expect exactly 0.5", func() {
			convey.So(rating.ExpectedResult(1600, 1600), convey.ShouldEqual, 0.5)
		})

		convey.Convey("Then the two sides sum to 1 within 1e-9", func() {
			pairs := [][2]float64{
				{1600, 1600},
				{2200, 1600},
				{1234.5, 1876.3},
				{0, 3000},
				{-50, 125},
			}
			for _, p := range pairs {
				sum := rating.ExpectedResult(p[0], p[1]) + rating.ExpectedResult(p[1], p[0])
				convey.So(sum, convey.ShouldAlmostEqual, 1.0, 1e-9)
			}
		})

		convey.Convey("Then expectation grows monotonically with the gap", func() {
			convey.So(rating.ExpectedResult(2200, 1600), convey.ShouldBeGreaterThan, 0.5)
			prev := 0.0
			for gap := 0.0; gap <= 1200; gap += 100 {
				we := rating.ExpectedResult(1600+gap, 1600)
				convey.So(we, convey.ShouldBeGreaterThanOrEqualTo, prev)
				convey.So(we, convey.ShouldBeBetween, 0, 1)
				prev = we
			}
		})

		convey.Convey("Then a 100-point favorite expects about 0.5948", func() {
			convey.So(rating.ExpectedResult(1800, 1700), convey.ShouldAlmostEqual, 0.59478, 1e-4)
		})
	})
}

func TestActualResult(t *testing.T) {
	convey.Convey("Given final scores", t, func() {
		convey.Convey("Then regulation results map to 1/0.5/0", func() {
			convey.So(rating.ActualResult(3, 1, false), convey.ShouldEqual, 1.0)
			convey.So(rating.ActualResult(1, 3, false), convey.ShouldEqual, 0.0)
			convey.So(rating.ActualResult(1, 1, false), convey.ShouldEqual, 0.5)
		})

		convey.Convey("Then shootout results map to 0.75/0.5", func() {
			// Inputs are the shootout tally; 4-2 on penalties.
			convey.So(rating.ActualResult(4, 2, true), convey.ShouldEqual, 0.75)
			convey.So(rating.ActualResult(2, 4, true), convey.ShouldEqual, 0.5)
		})

		convey.Convey("Then the swapped shootout calls complement each other", func() {
			winner := rating.ActualResult(5, 4, true)
			loser := rating.ActualResult(4, 5, true)
			convey.So(winner, convey.ShouldEqual, 0.75)
			convey.So(loser, convey.ShouldEqual, 0.5)
		})
	})
}

func TestPointsChange(t *testing.T) {
	convey.Convey("Given the points change computation", t, func() {
		convey.Convey("When a knockout loss yields a raw delta of -5", func() {
			// Equal teams, loss, importance 10: raw = 10 × (0 − 0.5) = −5.
			delta, protected := rating.PointsChange(1500, 1500, 0, 10, true)

			convey.Convey("Then protection zeroes the delta", func() {
				convey.So(delta, convey.ShouldEqual, 0)
				convey.So(protected, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the same loss is not a knockout", func() {
			delta, protected := rating.PointsChange(1500, 1500, 0, 10, false)

			convey.Convey("Then the full negative delta applies", func() {
				convey.So(delta, convey.ShouldEqual, -5)
				convey.So(protected, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a knockout win yields a positive delta", func() {
			delta, protected := rating.PointsChange(1500, 1500, 1, 10, true)

			convey.Convey("Then protection does not fire", func() {
				convey.So(delta, convey.ShouldEqual, 5)
				convey.So(protected, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When raw deltas sit at rounding boundaries", func() {
			// Equal teams, win: raw = importance × 0.5.
			delta, _ := rating.PointsChange(1500, 1500, 1, 6.94, false) // raw 3.47
			convey.So(delta, convey.ShouldEqual, 3.5)

			delta, _ = rating.PointsChange(1500, 1500, 0, 6.88, false) // raw -3.44
			convey.So(delta, convey.ShouldEqual, -3.4)

			// Half rounds away from zero on both sides.
			delta, _ = rating.PointsChange(1500, 1500, 1, 6.9, false) // raw 3.45
			convey.So(delta, convey.ShouldEqual, 3.5)

			delta, _ = rating.PointsChange(1500, 1500, 0, 6.9, false) // raw -3.45
			convey.So(delta, convey.ShouldEqual, -3.5)
		})

		convey.Convey("Then the delta magnitude never exceeds the importance", func() {
			for _, imp := range []float64{5, 10, 25, 50, 60} {
				for _, actual := range []float64{0, 0.5, 0.75, 1} {
					delta, _ := rating.PointsChange(1200, 2400, actual, imp, false)
					convey.So(math.Abs(delta), convey.ShouldBeLessThanOrEqualTo, imp)
				}
			}
		})
	})
}

func TestCalculateComplete(t *testing.T) {
	convey.Convey("Given an engine over the curated registry", t, func() {
		eng := rating.NewEngine(tournament.New())

		convey.Convey("When a 1800 side beats a 1700 side in a World Cup group match", func() {
			calc := eng.CalculateComplete(rating.Input{
				TeamID: 1, OpponentID: 2,
				TeamPoints: 1800, OpponentPoints: 1700,
				TeamScore: 2, OpponentScore: 0,
				Context: rating.Context{
					LeagueID: 1,
					Stage:    "Group Stage - 3",
					Kickoff:  time.Date(2026, time.June, 14, 18, 0, 0, 0, time.UTC),
				},
			})

			convey.Convey("Then importance 50 applies and the delta follows the formula", func() {
				convey.So(calc.Importance, convey.ShouldEqual, 50)
				convey.So(calc.ExpectedResult, convey.ShouldAlmostEqual, 0.59478, 1e-4)
				convey.So(calc.ActualResult, convey.ShouldEqual, 1.0)
				convey.So(calc.PointsChange, convey.ShouldEqual, 20.3)
				convey.So(calc.PointsAfter, convey.ShouldEqual, 1820.3)
				convey.So(calc.AppliedKnockoutProtection, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When equal sides draw a friendly outside the calendar", func() {
			calc := eng.CalculateComplete(rating.Input{
				TeamID: 3, OpponentID: 4,
				TeamPoints: 1500, OpponentPoints: 1500,
				TeamScore: 1, OpponentScore: 1,
				Context: rating.Context{
					LeagueID: 10,
					Kickoff:  time.Date(2026, time.January, 7, 20, 0, 0, 0, time.UTC),
				},
			})

			convey.Convey("Then nothing moves", func() {
				convey.So(calc.ExpectedResult, convey.ShouldEqual, 0.5)
				convey.So(calc.ActualResult, convey.ShouldEqual, 0.5)
				convey.So(calc.PointsChange, convey.ShouldEqual, 0)
				convey.So(calc.PointsAfter, convey.ShouldEqual, 1500)
			})
		})

		convey.Convey("When a heavy favorite loses a knockout final", func() {
			ctx := rating.Context{
				LeagueID: 1,
				Stage:    "Final",
				Kickoff:  time.Date(2026, time.July, 19, 18, 0, 0, 0, time.UTC),
			}
			favorite := eng.CalculateComplete(rating.Input{
				TeamID: 5, OpponentID: 6,
				TeamPoints: 2000, OpponentPoints: 1500,
				TeamScore: 0, OpponentScore: 1,
				Context: ctx,
			})
			underdog := eng.CalculateComplete(rating.Input{
				TeamID: 6, OpponentID: 5,
				TeamPoints: 1500, OpponentPoints: 2000,
				TeamScore: 1, OpponentScore: 0,
				Context: ctx,
			})

			convey.Convey("Then protection suppresses only the favorite's loss", func() {
				convey.So(favorite.AppliedKnockoutProtection, convey.ShouldBeTrue)
				convey.So(favorite.PointsChange, convey.ShouldEqual, 0)
				convey.So(underdog.AppliedKnockoutProtection, convey.ShouldBeFalse)
				convey.So(underdog.PointsChange, convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("Then the two deltas do not cancel: points are created", func() {
				convey.So(favorite.PointsChange+underdog.PointsChange, convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When a shootout decides a quarter-final", func() {
			ctx := rating.Context{
				LeagueID:        4,
				Stage:           "Quarter-finals",
				PenaltyShootout: true,
				Kickoff:         time.Date(2026, time.June, 10, 18, 0, 0, 0, time.UTC),
			}
			// Regulation ended level; inputs carry the 4-2 shootout tally.
			winner := eng.CalculateComplete(rating.Input{
				TeamID: 7, OpponentID: 8,
				TeamPoints: 1650, OpponentPoints: 1650,
				TeamScore: 4, OpponentScore: 2,
				Context: ctx,
			})
			loser := eng.CalculateComplete(rating.Input{
				TeamID: 8, OpponentID: 7,
				TeamPoints: 1650, OpponentPoints: 1650,
				TeamScore: 2, OpponentScore: 4,
				Context: ctx,
			})

			convey.Convey("Then the winner banks 0.75 and the loser keeps draw credit", func() {
				convey.So(winner.ActualResult, convey.ShouldEqual, 0.75)
				convey.So(winner.Importance, convey.ShouldEqual, 40)
				// 40 × (0.75 − 0.5) = 10.
				convey.So(winner.PointsChange, convey.ShouldEqual, 10)
				convey.So(loser.ActualResult, convey.ShouldEqual, 0.5)
				// 40 × (0.5 − 0.5) = 0; protection is moot.
				convey.So(loser.PointsChange, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the knockout flag is asserted without a stage label", func() {
			calc := eng.CalculateComplete(rating.Input{
				TeamID: 9, OpponentID: 10,
				TeamPoints: 1900, OpponentPoints: 1400,
				TeamScore: 0, OpponentScore: 2,
				Context: rating.Context{
					LeagueID: 1,
					Knockout: true,
				},
			})

			convey.Convey("Then protection still applies", func() {
				convey.So(calc.AppliedKnockoutProtection, convey.ShouldBeTrue)
				convey.So(calc.PointsChange, convey.ShouldEqual, 0)
			})
		})
	})
}

func TestSeedingPoints(t *testing.T) {
	convey.Convey("Given the seeding formula", t, func() {
		convey.Convey("Then ranks map to 1600 − (rank−1) × 4", func() {
			convey.So(rating.SeedingPoints(1), convey.ShouldEqual, 1600)
			convey.So(rating.SeedingPoints(100), convey.ShouldEqual, 1204)
			convey.So(rating.SeedingPoints(200), convey.ShouldEqual, 804)
		})
	})
}
