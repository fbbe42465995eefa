package rating

import (
	"strings"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
)

// Importance multipliers by competition class and stage.
const (
	ImportanceWorldCupLate          = 60 // world championship from the quarter-finals on
	ImportanceWorldCup              = 50 // world championship group stage and round of 16
	ImportanceContinentalLate       = 40 // continental finals from the quarter-finals on
	ImportanceContinental           = 35 // continental finals up to the round of 16
	ImportanceChampionsInvitational = 40 // global invitational between continental champions
	ImportanceNationsLeagueFinals   = 25 // nations-league finals, semis, play-offs
	ImportanceNationsLeagueGroup    = 15 // nations-league group phase
	ImportanceQualifier             = 25 // any qualification round, incl. olympic
	ImportanceFriendly              = 10 // friendly inside a calendar window, and the default
	ImportanceFriendlyOutOfWindow   = 5  // friendly outside a calendar window (see engine option)
)

// worldChampionshipBase distinguishes the world championship from other
// global-tier competitions in the registry data.
const worldChampionshipBase = 50

// calendarWindow is one year-independent International Match Calendar
// window, bounded by month and day-of-month (inclusive).
type calendarWindow struct {
	month    time.Month
	firstDay int
	lastDay  int
}

var calendarWindows = []calendarWindow{
	{time.March, 20, 31},
	{time.June, 1, 15},
	{time.September, 1, 15},
	{time.October, 10, 20},
	{time.November, 10, 25},
}

// knockoutKeywords mark a round label as an elimination stage.
var knockoutKeywords = []string{
	"round of",
	"quarter",
	"semi",
	"final",
	"play-off",
	"playoff",
}

// MatchImportance resolves the importance multiplier I for a fixture.
//
// The rules form a strict priority cascade (first match wins) because
// classification combines competition identity with stage text and cannot
// be a plain lookup:
//
//  1. world championship finals: 60 from the quarter-finals, else 50
//  2. world championship qualifying: 25
//  3. continental championship finals: 40 from the quarter-finals, else 35
//  4. global invitational between continental champions: 40
//  5. nations league: 25 in finals/semis/play-offs, else 15
//  6. any remaining qualifier (incl. olympic qualification): 25
//  7. friendly or unclassified: 10 in a calendar window, the configured
//     low constant outside one
//  8. anything else: 10, treated as an in-window friendly
func (e *Engine) MatchImportance(mc Context) float64 {
	entry := e.registry.Lookup(mc.LeagueID)
	stage := model.NormalizeStage(mc.Stage)
	late := stage == model.StageQuarter || stage == model.StageSemi ||
		stage == model.StageFinal || stage == model.StageThirdPlace

	switch {
	case entry.Tier == tournament.TierGlobal && entry.BaseImportance >= worldChampionshipBase:
		if late {
			return ImportanceWorldCupLate
		}
		return ImportanceWorldCup

	case entry.Tier == tournament.TierQualifier && strings.Contains(strings.ToLower(entry.Name), "world cup"):
		return ImportanceQualifier

	case entry.Tier == tournament.TierContinental:
		if late {
			return ImportanceContinentalLate
		}
		return ImportanceContinental

	case entry.Tier == tournament.TierGlobal && entry.BaseImportance == ImportanceChampionsInvitational:
		return ImportanceChampionsInvitational

	case entry.Tier == tournament.TierNationsLeague:
		if stage == model.StageFinal || stage == model.StageSemi || stage == model.StagePlayOff {
			return ImportanceNationsLeagueFinals
		}
		return ImportanceNationsLeagueGroup

	case entry.Tier == tournament.TierQualifier:
		return ImportanceQualifier

	case entry.Tier == tournament.TierFriendly:
		if InCalendarWindow(mc.Kickoff) {
			return ImportanceFriendly
		}
		return e.outOfWindowFriendly

	default:
		return ImportanceFriendly
	}
}

// InCalendarWindow reports whether the date falls inside one of the five
// fixed yearly International Match Calendar windows. A zero or otherwise
// unknown timestamp counts as outside: assuming in-window on bad input
// would silently inflate importance.
func InCalendarWindow(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	month, day := t.Month(), t.Day()
	for _, w := range calendarWindows {
		if month == w.month && day >= w.firstDay && day <= w.lastDay {
			return true
		}
	}
	return false
}

// IsKnockoutStage reports whether a round label denotes an elimination
// stage. Matching is case-insensitive substring; an empty label is not a
// knockout.
func IsKnockoutStage(label string) bool {
	l := strings.ToLower(label)
	if strings.TrimSpace(l) == "" {
		return false
	}
	for _, kw := range knockoutKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}
