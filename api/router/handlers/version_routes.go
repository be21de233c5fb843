package handlers

import (
	"net/http"

	"querry/version"

	"github.com/go-chi/chi/v5"
)

func RegisterVersionRoutes(r chi.Router, h *Handlers) {
	r.Get("/version", h.getVersion)
}

// getVersion returns the application version.
// @Summary Get application version
// @Description Retrieves the current version of the application.
// @Tags Version
// @Produce json
// @Success 200 {object} map[string]string "{"version": "1.0.0"}"
// @Router /version [get]
func (h *Handlers) getVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": version.AppVersion})
}
