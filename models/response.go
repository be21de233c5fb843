package models

// ErrorResponse is a generic error response structure for API
type ErrorResponse struct {
	Message string `json:"message" example:"Error message describing the issue"`
}

// StartupResponse tells the front-end which page to open first.
type StartupResponse struct {
	Page            int `json:"page" example:"2"`
	CollectionCount int `json:"collection_count" example:"3"`
}
