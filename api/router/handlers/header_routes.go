package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterHeaderRoutes(r chi.Router, h *Handlers) {
	r.Get("/collections/{collectionID}/headers", h.getHeadersForCollection)
	r.Post("/collections/{collectionID}/headers", h.createHeader)
	r.Put("/headers/{headerID}", h.updateHeader)
	r.Delete("/headers/{headerID}", h.deleteHeader)
}
