package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterCollectionRoutes(r chi.Router, h *Handlers) {
	r.Get("/collections", h.getCollections)
	r.Post("/collections", h.createCollection)

	r.Get("/collections/{collectionID}", h.getCollectionByID)
	r.Put("/collections/{collectionID}", h.updateCollection)
	r.Delete("/collections/{collectionID}", h.deleteCollection)
}
