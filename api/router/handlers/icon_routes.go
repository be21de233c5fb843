package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterIconRoutes(r chi.Router, h *Handlers) {
	r.Get("/icons", h.getIcons)
	r.Get("/icons/{name}", h.getIcon)
}

// @Summary List icon pack
// @Tags Icons
// @Produce json
// @Param q query string false "Case-insensitive name filter"
// @Success 200 {array} string
// @Router /icons [get]
func (h *Handlers) getIcons(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.SearchIcons(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, "getIcons", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// getIcon serves the icon file itself.
// @Summary Get icon
// @Tags Icons
// @Produce image/svg+xml,image/png
// @Param name path string true "Icon file name, e.g. 1F4A6.svg"
// @Success 200
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /icons/{name} [get]
func (h *Handlers) getIcon(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.ResolveIcon(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, "getIcon", err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
