package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRequestRoutes(r chi.Router, h *Handlers) {
	r.Get("/collections/{collectionID}/requests", h.getRequestsForCollection)
	r.Post("/collections/{collectionID}/requests", h.createRequest)

	r.Get("/requests/{requestID}", h.getRequestByID)
	r.Patch("/requests/{requestID}", h.updateRequest)
	r.Delete("/requests/{requestID}", h.deleteRequest)
	r.Post("/requests/{requestID}/select", h.selectRequest)
}
