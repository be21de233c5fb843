package handlers

import (
	"net/http"

	"querry/models"

	"github.com/go-chi/chi/v5"
)

// @Summary List collection headers
// @Tags Headers
// @Produce json
// @Param collectionID path string true "Collection ID"
// @Success 200 {array} models.CollectionHeader
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{collectionID}/headers [get]
func (h *Handlers) getHeadersForCollection(w http.ResponseWriter, r *http.Request) {
	headers, err := h.svc.ListHeaders(r.Context(), chi.URLParam(r, "collectionID"))
	if err != nil {
		writeError(w, "getHeadersForCollection", err)
		return
	}
	writeJSON(w, http.StatusOK, headers)
}

// @Summary Add collection header
// @Tags Headers
// @Accept json
// @Produce json
// @Param collectionID path string true "Collection ID"
// @Param header body models.HeaderRequest true "Header"
// @Success 201 {object} models.CollectionHeader
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{collectionID}/headers [post]
func (h *Handlers) createHeader(w http.ResponseWriter, r *http.Request) {
	var req models.HeaderRequest
	if !decodeBody(w, r, "createHeader", &req) {
		return
	}
	header, err := h.svc.AddHeader(r.Context(), chi.URLParam(r, "collectionID"), req)
	if err != nil {
		writeError(w, "createHeader", err)
		return
	}
	writeJSON(w, http.StatusCreated, header)
}

// @Summary Update collection header
// @Tags Headers
// @Accept json
// @Produce json
// @Param headerID path string true "Header ID"
// @Param header body models.HeaderRequest true "Header"
// @Success 200 {object} models.CollectionHeader
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /headers/{headerID} [put]
func (h *Handlers) updateHeader(w http.ResponseWriter, r *http.Request) {
	var req models.HeaderRequest
	if !decodeBody(w, r, "updateHeader", &req) {
		return
	}
	header, err := h.svc.UpdateHeader(r.Context(), chi.URLParam(r, "headerID"), req)
	if err != nil {
		writeError(w, "updateHeader", err)
		return
	}
	writeJSON(w, http.StatusOK, header)
}

// @Summary Delete collection header
// @Tags Headers
// @Param headerID path string true "Header ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /headers/{headerID} [delete]
func (h *Handlers) deleteHeader(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteHeader(r.Context(), chi.URLParam(r, "headerID")); err != nil {
		writeError(w, "deleteHeader", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
