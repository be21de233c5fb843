package handlers

import (
	"net/http"

	"querry/logger"
	"querry/models"

	"github.com/go-chi/chi/v5"
)

// getCollections lists collections newest first, optionally filtered by name.
// @Summary List collections
// @Tags Collections
// @Produce json
// @Param q query string false "Case-insensitive name filter"
// @Success 200 {array} models.Collection
// @Failure 500 {object} models.ErrorResponse
// @Router /collections [get]
func (h *Handlers) getCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.svc.ListCollections(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, "getCollections", err)
		return
	}
	writeJSON(w, http.StatusOK, collections)
	logger.Debug("Fetched %d collections", len(collections))
}

// createCollection creates a collection. A blank name becomes "New Collection".
// @Summary Create collection
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection body models.CollectionCreateRequest false "Collection name"
// @Success 201 {object} models.Collection
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /collections [post]
func (h *Handlers) createCollection(w http.ResponseWriter, r *http.Request) {
	var req models.CollectionCreateRequest
	if r.ContentLength != 0 && !decodeBody(w, r, "createCollection", &req) {
		return
	}
	c, err := h.svc.NewCollection(r.Context(), req.Name)
	if err != nil {
		writeError(w, "createCollection", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// @Summary Get collection
// @Tags Collections
// @Produce json
// @Param collectionID path string true "Collection ID"
// @Success 200 {object} models.Collection
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{collectionID} [get]
func (h *Handlers) getCollectionByID(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCollection(r.Context(), chi.URLParam(r, "collectionID"))
	if err != nil {
		writeError(w, "getCollectionByID", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateCollection replaces name and icon. The request count is always recomputed.
// @Summary Update collection
// @Tags Collections
// @Accept json
// @Produce json
// @Param collectionID path string true "Collection ID"
// @Param collection body models.CollectionUpdate true "New values"
// @Success 200 {object} models.Collection
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /collections/{collectionID} [put]
func (h *Handlers) updateCollection(w http.ResponseWriter, r *http.Request) {
	var upd models.CollectionUpdate
	if !decodeBody(w, r, "updateCollection", &upd) {
		return
	}
	c, err := h.svc.UpdateCollection(r.Context(), chi.URLParam(r, "collectionID"), upd)
	if err != nil {
		writeError(w, "updateCollection", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// deleteCollection removes a collection with its requests. Unknown ids succeed.
// @Summary Delete collection
// @Tags Collections
// @Param collectionID path string true "Collection ID"
// @Success 204
// @Failure 500 {object} models.ErrorResponse
// @Router /collections/{collectionID} [delete]
func (h *Handlers) deleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCollection(r.Context(), chi.URLParam(r, "collectionID")); err != nil {
		writeError(w, "deleteCollection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
