package model

import "strings"

// Stage is the normalized phase of a competition.
type Stage string

const (
	StageGroup       Stage = "group"
	StageRoundOf16   Stage = "round-of-16"
	StageQuarter     Stage = "quarter"
	StageSemi        Stage = "semi"
	StageFinal       Stage = "final"
	StageThirdPlace  Stage = "third-place"
	StagePlayOff     Stage = "play-off"
	StageUnspecified Stage = "unspecified"
)

// stageRule maps a round-label keyword to its normalized stage. Rules are
// evaluated in order; earlier rules must cover labels whose keywords are
// substrings of later ones ("semi-finals" contains "final").
type stageRule struct {
	keyword string
	stage   Stage
}

var stageRules = []stageRule{
	{"round of", StageRoundOf16},
	{"quarter", StageQuarter},
	{"semi", StageSemi},
	{"third", StageThirdPlace},
	{"3rd place", StageThirdPlace},
	{"play-off", StagePlayOff},
	{"playoff", StagePlayOff},
	{"final", StageFinal},
	{"group", StageGroup},
	{"gr.", StageGroup},
	{"league", StageGroup},
}

// NormalizeStage classifies a free-text round label. Empty or unmatched
// labels return StageUnspecified; new vocabulary goes into stageRules, not
// into code.
func NormalizeStage(label string) Stage {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return StageUnspecified
	}
	for _, r := range stageRules {
		if strings.Contains(l, r.keyword) {
			return r.stage
		}
	}
	return StageUnspecified
}
