package rating_test

import (
	"testing"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/rating"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
	"github.com/smartystreets/goconvey/convey"
)

func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 12, 0, 0, 0, time.UTC)
}

func TestMatchImportance(t *testing.T) {
	convey.Convey("Given an engine over the curated registry", t, func() {
		eng := rating.NewEngine(tournament.New())

		convey.Convey("Then the World Cup splits on the quarter-final boundary", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 1, Stage: "Group Stage - 1"}), convey.ShouldEqual, 50)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 1, Stage: "Round of 16"}), convey.ShouldEqual, 50)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 1, Stage: "Quarter-finals"}), convey.ShouldEqual, 60)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 1, Stage: "Semi-finals"}), convey.ShouldEqual, 60)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 1, Stage: "Final"}), convey.ShouldEqual, 60)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 1, Stage: "3rd Place Final"}), convey.ShouldEqual, 60)
		})

		convey.Convey("Then World Cup qualifiers are 25 regardless of stage", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 32, Stage: "Group C"}), convey.ShouldEqual, 25)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 34, Stage: "Final"}), convey.ShouldEqual, 25)
		})

		convey.Convey("Then continental finals split on the quarter-final boundary", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 4, Stage: "Group Stage - 2"}), convey.ShouldEqual, 35)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 4, Stage: "Quarter-finals"}), convey.ShouldEqual, 40)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 9, Stage: "Semi-finals"}), convey.ShouldEqual, 40)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 6, Stage: "Round of 16"}), convey.ShouldEqual, 35)
		})

		convey.Convey("Then the champions' invitational is a flat 40", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 21, Stage: "Group A"}), convey.ShouldEqual, 40)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 21, Stage: "Final"}), convey.ShouldEqual, 40)
		})

		convey.Convey("Then nations leagues split on finals/semis/play-offs", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 5, Stage: "League A - Group 4"}), convey.ShouldEqual, 15)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 5, Stage: "Semi-finals"}), convey.ShouldEqual, 25)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 536, Stage: "Play-offs"}), convey.ShouldEqual, 25)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 5, Stage: "Final"}), convey.ShouldEqual, 25)
		})

		convey.Convey("Then remaining qualifiers, including olympic ones, are 25", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 960, Stage: "Group H"}), convey.ShouldEqual, 25)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 883, Stage: ""}), convey.ShouldEqual, 25)
		})

		convey.Convey("Then friendlies depend on the calendar window", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 10, Kickoff: date(time.October, 15)}), convey.ShouldEqual, 10)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 10, Kickoff: date(time.January, 15)}), convey.ShouldEqual, 5)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 669, Kickoff: date(time.June, 5)}), convey.ShouldEqual, 10)
		})

		convey.Convey("Then unknown competitions degrade to friendlies", func() {
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 424242, Kickoff: date(time.November, 15)}), convey.ShouldEqual, 10)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 424242, Kickoff: date(time.February, 1)}), convey.ShouldEqual, 5)
		})

		convey.Convey("Then anything else falls back to the in-window friendly default", func() {
			// Youth and sub-regional tiers have no dedicated rule.
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 20, Stage: "Final"}), convey.ShouldEqual, 10)
			convey.So(eng.MatchImportance(rating.Context{LeagueID: 25, Stage: "Group B"}), convey.ShouldEqual, 10)
		})

		convey.Convey("When the out-of-window constant is overridden", func() {
			lowEng := rating.NewEngine(tournament.New(), rating.WithOutOfWindowFriendlyImportance(0.5))

			convey.Convey("Then out-of-window friendlies use the override", func() {
				convey.So(lowEng.MatchImportance(rating.Context{LeagueID: 10, Kickoff: date(time.January, 15)}), convey.ShouldEqual, 0.5)
				convey.So(lowEng.MatchImportance(rating.Context{LeagueID: 10, Kickoff: date(time.October, 15)}), convey.ShouldEqual, 10)
			})
		})
	})
}

func TestInCalendarWindow(t *testing.T) {
	convey.Convey("Given the five yearly calendar windows", t, func() {
		convey.Convey("Then boundary dates classify correctly", func() {
			inWindow := []time.Time{
				date(time.March, 20), date(time.March, 31),
				date(time.June, 1), date(time.June, 10), date(time.June, 15),
				date(time.September, 1), date(time.September, 15),
				date(time.October, 10), date(time.October, 15), date(time.October, 20),
				date(time.November, 10), date(time.November, 25),
			}
			outOfWindow := []time.Time{
				date(time.March, 19),
				date(time.June, 20),
				date(time.September, 16),
				date(time.October, 9), date(time.October, 25),
				date(time.November, 9), date(time.November, 26),
				date(time.January, 1), date(time.July, 15),
			}
			for _, d := range inWindow {
				convey.So(rating.InCalendarWindow(d), convey.ShouldBeTrue)
			}
			for _, d := range outOfWindow {
				convey.So(rating.InCalendarWindow(d), convey.ShouldBeFalse)
			}
		})

		convey.Convey("Then an unknown timestamp counts as outside", func() {
			convey.So(rating.InCalendarWindow(time.Time{}), convey.ShouldBeFalse)
		})
	})
}

func TestIsKnockoutStage(t *testing.T) {
	convey.Convey("Given round labels", t, func() {
		convey.Convey("Then elimination labels are detected", func() {
			for _, label := range []string{
				"Round of 16", "Quarter-finals", "Semi-finals", "Final",
				"3rd Place Final", "Play-offs", "Playoff Round", "FINAL",
			} {
				convey.So(rating.IsKnockoutStage(label), convey.ShouldBeTrue)
			}
		})

		convey.Convey("Then group phases and empty labels are not", func() {
			for _, label := range []string{"Group Stage - 1", "League A - Group 2", "", "   "} {
				convey.So(rating.IsKnockoutStage(label), convey.ShouldBeFalse)
			}
		})
	})
}
