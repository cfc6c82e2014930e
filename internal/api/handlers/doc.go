// Package handlers implements HTTP handlers for the markdown-pricer API.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
