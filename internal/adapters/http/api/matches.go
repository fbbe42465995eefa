package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pitchrank/pitchrank/internal/domain/model"
)

const defaultMatchesLimit = 50

// MatchesDependencies defines the interface for audit log reads.
type MatchesDependencies interface {
	RecentMatches(ctx context.Context, limit int) []model.ProcessedMatch
}

// MatchesHandler serves recently processed matches.
type MatchesHandler struct {
	deps MatchesDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleGetMatches handles GET /matches?limit=N requests, newest first.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := defaultMatchesLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = parsed
	}

	matches := h.deps.RecentMatches(r.Context(), limit)
	if matches == nil {
		matches = []model.ProcessedMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}
