package handler

import "net/http"

// POST /admin/model/reload
//
// Signals that a new snapshot was trained: drops the cached model and
// flushes cached results so the next request serves from the new one.
func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	h.service.ReloadModel(r.Context())
	writeJSON(w, http.StatusOK, ReloadResponse{Status: "reloaded"})
}
