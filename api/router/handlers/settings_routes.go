package handlers

import (
	"net/http"

	"querry/config"

	"github.com/go-chi/chi/v5"
)

// SettingsResponse is the effective, read-only runtime configuration.
type SettingsResponse struct {
	DatabasePath  string `json:"database_path"`
	SchemaVersion uint   `json:"schema_version"`
	IconsDir      string `json:"icons_dir"`
	IconFallback  string `json:"icon_fallback"`
	EventBuffer   int    `json:"event_buffer"`
	LogLevel      string `json:"log_level"`
}

func RegisterSettingsRoutes(r chi.Router, h *Handlers) {
	r.Get("/settings", h.getSettings)
}

// getSettings reports the configuration the server was started with.
// @Summary Get runtime settings
// @Tags Settings
// @Produce json
// @Success 200 {object} SettingsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /settings [get]
func (h *Handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	schema, _, err := h.svc.Store().SchemaVersion()
	if err != nil {
		writeError(w, "getSettings", err)
		return
	}
	cfg := config.AppConfig
	writeJSON(w, http.StatusOK, SettingsResponse{
		DatabasePath:  h.svc.Store().Path(),
		SchemaVersion: schema,
		IconsDir:      cfg.Icons.Dir,
		IconFallback:  cfg.Icons.Fallback,
		EventBuffer:   cfg.Events.Buffer,
		LogLevel:      cfg.Logging.Level,
	})
}
