package models

import "time"

// DefaultCollectionName is used when a collection is created without a name.
const DefaultCollectionName = "New Collection"

// Collection is a named folder-like grouping of requests.
type Collection struct {
	ID           string    `json:"id" example:"0b8a3c1e-3f5d-4a57-9d8e-2a0c7f1b6e44" readOnly:"true"`
	Name         string    `json:"name" example:"Inbox" binding:"required"`
	Icon         string    `json:"icon" example:"1F4A6.svg"`
	RequestCount int       `json:"request_count" example:"3" readOnly:"true"` // Always equals the number of owned requests.
	CreatedAt    time.Time `json:"created_at" readOnly:"true"`
}

// CollectionCreateRequest is the body accepted when creating a collection.
type CollectionCreateRequest struct {
	Name string `json:"name" example:"Inbox"`
}

// CollectionUpdate replaces the mutable fields of a collection.
// RequestCount is what the caller believes the count to be; the stored value is always
// recomputed from the request table.
type CollectionUpdate struct {
	Name         string `json:"name" example:"Inbox" binding:"required"`
	Icon         string `json:"icon" example:"1F4A6.svg"`
	RequestCount int    `json:"request_count" example:"3"`
}
