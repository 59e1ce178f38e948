// Package dto contains the request and response payloads of the HTTP API.
package dto

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
