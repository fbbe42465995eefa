package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/rating"
)

// PreviewDependencies defines the interface for pre-match previews.
type PreviewDependencies interface {
	Preview(ctx context.Context, homeID, awayID int64, mc rating.Context) (model.Preview, error)
}

// PreviewHandler handles pre-match what-if requests.
type PreviewHandler struct {
	deps PreviewDependencies
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(deps PreviewDependencies) *PreviewHandler {
	return &PreviewHandler{deps: deps}
}

// HandleGetPreview handles GET /preview requests.
//
// Query parameters: home_id and away_id (required), league_id, round,
// kickoff (RFC3339), knockout (boolean override).
func (h *PreviewHandler) HandleGetPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	homeID, err := strconv.ParseInt(q.Get("home_id"), 10, 64)
	if err != nil || homeID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	awayID, err := strconv.ParseInt(q.Get("away_id"), 10, 64)
	if err != nil || awayID <= 0 || awayID == homeID {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	mc := rating.Context{Stage: q.Get("round")}
	if leagueStr := q.Get("league_id"); leagueStr != "" {
		leagueID, err := strconv.Atoi(leagueStr)
		if err != nil || leagueID < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		mc.LeagueID = leagueID
	}
	if kickoffStr := q.Get("kickoff"); kickoffStr != "" {
		kickoff, err := time.Parse(time.RFC3339, kickoffStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		mc.Kickoff = kickoff
	}
	if knockoutStr := q.Get("knockout"); knockoutStr != "" {
		knockout, err := strconv.ParseBool(knockoutStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		mc.Knockout = knockout
	}

	preview, err := h.deps.Preview(r.Context(), homeID, awayID, mc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
