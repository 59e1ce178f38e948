// Package dto contains the request and response payloads of the HTTP API.
package dto

// CreateCategoryRequest is the payload for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
	Type string `json:"type" binding:"required"`
}

// SuggestCategoryRequest is the payload for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

// CategoryResponse is the public representation of a category.
type CategoryResponse struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

// SuggestCategoryResponse wraps an optional suggestion.
type SuggestCategoryResponse struct {
	Category *CategoryResponse `json:"category"`
}
