package models

import "time"

// CollectionHeader is a default header attached to every request of a collection.
type CollectionHeader struct {
	ID           string    `json:"id" readOnly:"true"`
	Name         string    `json:"name" example:"Authorization" binding:"required"`
	Value        string    `json:"value" example:"Bearer {{token}}"`
	CollectionID string    `json:"collection_id" readOnly:"true"`
	CreatedAt    time.Time `json:"created_at" readOnly:"true"`
}

// HeaderRequest is the body accepted when creating or updating a header.
type HeaderRequest struct {
	Name  string `json:"name" example:"Authorization"`
	Value string `json:"value" example:"Bearer {{token}}"`
}
