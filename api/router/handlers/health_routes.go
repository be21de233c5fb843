package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterHealthRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.healthCheck)
	r.Get("/startup", h.getStartup)
}

// healthCheck reports whether the database is reachable.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 503 {object} models.ErrorResponse
// @Router /health [get]
func (h *Handlers) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().Ping(r.Context()); err != nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// getStartup tells the front-end whether to open the welcome page (1) or the collection list (2).
// @Summary Startup page
// @Tags Health
// @Produce json
// @Success 200 {object} models.StartupResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /startup [get]
func (h *Handlers) getStartup(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Startup(r.Context())
	if err != nil {
		writeError(w, "getStartup", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
