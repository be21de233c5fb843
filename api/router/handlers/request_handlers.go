package handlers

import (
	"net/http"

	"querry/models"

	"github.com/go-chi/chi/v5"
)

// getRequestsForCollection lists the requests of a collection, newest first.
// @Summary List requests of a collection
// @Tags Requests
// @Produce json
// @Param collectionID path string true "Collection ID"
// @Success 200 {array} models.Request
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{collectionID}/requests [get]
func (h *Handlers) getRequestsForCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "collectionID")
	if _, err := h.svc.GetCollection(r.Context(), collectionID); err != nil {
		writeError(w, "getRequestsForCollection", err)
		return
	}
	requests, err := h.svc.ListRequests(r.Context(), collectionID)
	if err != nil {
		writeError(w, "getRequestsForCollection", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// createRequest adds a "New Request" (GET, empty URL) to a collection.
// @Summary Create request
// @Tags Requests
// @Accept json
// @Produce json
// @Param collectionID path string true "Collection ID"
// @Param request body models.RequestCreateRequest false "Protocol, defaults to HTTP"
// @Success 201 {object} models.Request
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{collectionID}/requests [post]
func (h *Handlers) createRequest(w http.ResponseWriter, r *http.Request) {
	var req models.RequestCreateRequest
	if r.ContentLength != 0 && !decodeBody(w, r, "createRequest", &req) {
		return
	}
	protocol := models.ProtocolHTTP
	if req.Protocol != nil {
		protocol = *req.Protocol
	}
	created, err := h.svc.NewRequest(r.Context(), protocol, chi.URLParam(r, "collectionID"))
	if err != nil {
		writeError(w, "createRequest", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// @Summary Get request
// @Tags Requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} models.Request
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{requestID} [get]
func (h *Handlers) getRequestByID(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.GetRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, "getRequestByID", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// updateRequest changes only the fields present in the body.
// @Summary Update request
// @Tags Requests
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param request body models.RequestUpdate true "Fields to change"
// @Success 200 {object} models.Request
// @Failure 400 {object} models.ErrorResponse "Unknown protocol or method code"
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{requestID} [patch]
func (h *Handlers) updateRequest(w http.ResponseWriter, r *http.Request) {
	var upd models.RequestUpdate
	if !decodeBody(w, r, "updateRequest", &upd) {
		return
	}
	updated, err := h.svc.UpdateRequest(r.Context(), chi.URLParam(r, "requestID"), upd)
	if err != nil {
		writeError(w, "updateRequest", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// @Summary Delete request
// @Tags Requests
// @Param requestID path string true "Request ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{requestID} [delete]
func (h *Handlers) deleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRequest(r.Context(), chi.URLParam(r, "requestID")); err != nil {
		writeError(w, "deleteRequest", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// selectRequest broadcasts the selection to every other open view.
// @Summary Select request
// @Tags Requests
// @Param requestID path string true "Request ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{requestID}/select [post]
func (h *Handlers) selectRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SelectRequest(r.Context(), chi.URLParam(r, "requestID")); err != nil {
		writeError(w, "selectRequest", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
