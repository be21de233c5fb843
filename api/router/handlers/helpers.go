package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"querry/core"
	"querry/logger"
	"querry/models"
)

// Handlers holds the dependencies shared by every API handler.
type Handlers struct {
	svc *core.Service
}

func New(svc *core.Service) *Handlers {
	return &Handlers{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Message: msg})
}

// writeError maps a service error to a status: ErrNotFound is 404, ErrValidation is 400,
// everything else is a 500 whose details stay in the log.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		logger.Debug("%s: %v", op, err)
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation):
		logger.Debug("%s: %v", op, err)
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("%s: %v", op, err)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody decodes a JSON body into v, writing a 400 on failure. Unknown enum codes
// surface here through the models' UnmarshalText.
func decodeBody(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Debug("%s: Error decoding request body: %v", op, err)
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
