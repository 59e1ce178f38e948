// Package dto contains the request and response payloads of the HTTP API.
package dto

// UpdateSettingsRequest is the payload for updating user settings.
type UpdateSettingsRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// SettingsResponse is the public representation of user settings.
type SettingsResponse struct {
	Currency  string `json:"currency"`
	UpdatedAt string `json:"updatedAt"`
}
