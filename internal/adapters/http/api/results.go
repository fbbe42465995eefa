package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pitchrank/pitchrank/internal/app"
	"github.com/pitchrank/pitchrank/internal/domain/model"
)

// ResultDependencies defines the interface for result ingestion.
type ResultDependencies interface {
	Submit(ctx context.Context, m model.Match) (bool, error)
}

// ResultsHandler handles completed match submissions.
type ResultsHandler struct {
	deps ResultDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandlePostResult handles POST /results requests. Submission is
// idempotent on fixture id: a repeat acknowledges as duplicate instead of
// rating the match twice.
func (h *ResultsHandler) HandlePostResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	accepted, err := h.deps.Submit(r.Context(), req.toMatch())
	switch {
	case errors.Is(err, app.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
	case errors.Is(err, app.ErrInvalidMatch):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	case !accepted:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
	default:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
	}
}
