package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pitchrank/pitchrank/internal/domain/tournament"
)

// TournamentsHandler serves the curated competition registry.
type TournamentsHandler struct {
	registry *tournament.Registry
}

// NewTournamentsHandler creates a new tournaments handler.
func NewTournamentsHandler(registry *tournament.Registry) *TournamentsHandler {
	return &TournamentsHandler{registry: registry}
}

// HandleGetTournaments handles GET /tournaments requests, optionally
// filtered by ?confederation=UEFA or ?tier=2. Filters combine.
func (h *TournamentsHandler) HandleGetTournaments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	entries := h.registry.All()

	if c := r.URL.Query().Get("confederation"); c != "" {
		conf := tournament.Confederation(strings.ToUpper(c))
		switch conf {
		case tournament.FIFA, tournament.UEFA, tournament.CONMEBOL, tournament.CONCACAF,
			tournament.CAF, tournament.AFC, tournament.OFC, tournament.All:
			entries = h.registry.ByConfederation(conf)
		default:
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}

	if t := r.URL.Query().Get("tier"); t != "" {
		tier, err := strconv.Atoi(t)
		if err != nil || tier < tournament.TierGlobal || tier > tournament.TierFriendly {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.Tier == tier {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	writeJSON(w, http.StatusOK, entries)
}
