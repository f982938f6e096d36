package models

// StatusResponse is the body of the liveness endpoint.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every failed HTTP request.
type ErrorResponse struct {
	Error string `json:"error"`
}
