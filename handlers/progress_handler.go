package handlers

import (
	"net/http"

	"github.com/mychesstour/chesstour-api/services"
)

type ProgressHandler struct {
	progressService *services.ProgressService
}

func NewProgressHandler(ps *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: ps}
}

// GetHandler обрабатывает GET /api/v1/progress.
func (h *ProgressHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progressService.GetIssueProgress(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, progress, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
