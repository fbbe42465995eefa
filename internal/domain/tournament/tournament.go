// Package tournament classifies international competitions into
// confederation, tier, and base importance. The registry is built once and
// is read-only afterwards; unknown competitions resolve to a friendly
// fallback rather than an error.
package tournament

// Confederation identifies the governing body a competition belongs to.
type Confederation string

// Confederation codes. All marks invitational competitions open to every
// confederation.
const (
	FIFA     Confederation = "FIFA"
	UEFA     Confederation = "UEFA"
	CONMEBOL Confederation = "CONMEBOL"
	CONCACAF Confederation = "CONCACAF"
	CAF      Confederation = "CAF"
	AFC      Confederation = "AFC"
	OFC      Confederation = "OFC"
	All      Confederation = "ALL"
)

// Structural tiers, 1 (global championship) through 7 (friendlies).
const (
	TierGlobal        = 1
	TierContinental   = 2
	TierQualifier     = 3
	TierNationsLeague = 4
	TierSubRegional   = 5
	TierYouth         = 6
	TierFriendly      = 7
)

// FriendlyBaseImportance is the base weight of an in-window friendly and
// the fallback weight for unclassified competitions.
const FriendlyBaseImportance = 10

// Entry describes one competition.
type Entry struct {
	LeagueID       int           `json:"league_id"`
	Name           string        `json:"name"`
	Confederation  Confederation `json:"confederation"`
	Tier           int           `json:"tier"`
	BaseImportance float64       `json:"base_importance"`
	LogoURL        string        `json:"logo_url,omitempty"`
}

// Registry is an immutable lookup table over the curated competition set.
type Registry struct {
	byID    map[int]Entry
	ordered []Entry
}

// New builds a registry from the curated entries table.
func New() *Registry {
	r := &Registry{
		byID:    make(map[int]Entry, len(entries)),
		ordered: make([]Entry, len(entries)),
	}
	copy(r.ordered, entries)
	for _, e := range entries {
		r.byID[e.LeagueID] = e
	}
	return r
}

// Lookup resolves a league id to its entry. Unknown ids return a fallback
// friendly classification; they are treated as ordinary friendlies, never
// as errors.
func (r *Registry) Lookup(leagueID int) Entry {
	if e, ok := r.byID[leagueID]; ok {
		return e
	}
	return Entry{
		LeagueID:       leagueID,
		Name:           "Unclassified Competition",
		Confederation:  All,
		Tier:           TierFriendly,
		BaseImportance: FriendlyBaseImportance,
	}
}

// Known reports whether the league id is in the curated table.
func (r *Registry) Known(leagueID int) bool {
	_, ok := r.byID[leagueID]
	return ok
}

// ByConfederation returns entries for the given confederation, plus the
// ALL wildcard group, in table order.
func (r *Registry) ByConfederation(c Confederation) []Entry {
	var out []Entry
	for _, e := range r.ordered {
		if e.Confederation == c || e.Confederation == All {
			out = append(out, e)
		}
	}
	return out
}

// ByTier returns entries with the given tier, in table order.
func (r *Registry) ByTier(tier int) []Entry {
	var out []Entry
	for _, e := range r.ordered {
		if e.Tier == tier {
			out = append(out, e)
		}
	}
	return out
}

// All returns every entry in table order. The slice is a copy; callers may
// not mutate registry state through it.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// LeagueIDs returns the ids of every monitored competition, in table order.
func (r *Registry) LeagueIDs() []int {
	ids := make([]int, len(r.ordered))
	for i, e := range r.ordered {
		ids[i] = e.LeagueID
	}
	return ids
}

// Count returns the number of curated competitions.
func (r *Registry) Count() int {
	return len(r.ordered)
}
