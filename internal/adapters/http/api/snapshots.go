package api

import (
	"context"
	"net/http"

	"github.com/pitchrank/pitchrank/internal/domain/model"
)

// SnapshotDependencies defines the interface for ranking snapshots.
type SnapshotDependencies interface {
	SaveSnapshot(ctx context.Context) (model.Snapshot, error)
	Snapshots(ctx context.Context) []model.Snapshot
}

// SnapshotsHandler serves and captures ranking snapshots.
type SnapshotsHandler struct {
	deps SnapshotDependencies
}

// NewSnapshotsHandler creates a new snapshots handler.
func NewSnapshotsHandler(deps SnapshotDependencies) *SnapshotsHandler {
	return &SnapshotsHandler{deps: deps}
}

// HandleSnapshots handles GET /snapshots (history, oldest first) and
// POST /snapshots (capture now).
func (h *SnapshotsHandler) HandleSnapshots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		snaps := h.deps.Snapshots(r.Context())
		if snaps == nil {
			snaps = []model.Snapshot{}
		}
		writeJSON(w, http.StatusOK, snaps)
	case http.MethodPost:
		snap, err := h.deps.SaveSnapshot(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	default:
		http.NotFound(w, r)
	}
}
