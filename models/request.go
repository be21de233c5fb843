package models

import "time"

// DefaultRequestName is the name given to every freshly created request.
const DefaultRequestName = "New Request"

// Request is the saved metadata of a single REST/RPC call. Nothing is ever executed.
type Request struct {
	ID           string     `json:"id" readOnly:"true"`
	Name         string     `json:"name" example:"List users"`
	URL          string     `json:"url" example:"https://api.example.com/users"`
	Protocol     Protocol   `json:"protocol" example:"HTTP" enum:"HTTP,WS,GRPC,GQL"`
	HTTPMethod   HTTPMethod `json:"http_method" example:"GET" enum:"GET,POST,PUT,DEL"`
	CollectionID string     `json:"collection_id" readOnly:"true"`
	CreatedAt    time.Time  `json:"created_at" readOnly:"true"`
}

// RequestCreateRequest is the body accepted when creating a request. Protocol defaults to HTTP.
type RequestCreateRequest struct {
	Protocol *Protocol `json:"protocol,omitempty" example:"HTTP"`
}

// RequestUpdate is a partial update: nil fields are left unchanged.
type RequestUpdate struct {
	Name       *string     `json:"name,omitempty"`
	Protocol   *Protocol   `json:"protocol,omitempty"`
	HTTPMethod *HTTPMethod `json:"http_method,omitempty"`
	URL        *string     `json:"url,omitempty"`
}

// Empty reports whether the update would not change anything.
func (u RequestUpdate) Empty() bool {
	return u.Name == nil && u.Protocol == nil && u.HTTPMethod == nil && u.URL == nil
}
