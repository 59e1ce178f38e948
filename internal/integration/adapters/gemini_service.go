// Package adapters contains service implementations for external integrations.
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GeminiService suggests a category for a transaction description using the
// Gemini API. It is optional; when no API key is configured the service
// reports itself unavailable and the suggest endpoint degrades gracefully.
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService creates a GeminiService. Returns an unavailable service
// when apiKey is empty.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return &GeminiService{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiService{client: client, model: model}, nil
}

// IsAvailable reports whether the service can serve suggestions.
func (s *GeminiService) IsAvailable() bool {
	return s.client != nil
}

// Suggest picks the best matching category name for the description from the
// candidate list. Returns an empty string when the model declines to pick.
func (s *GeminiService) Suggest(ctx context.Context, description string, candidates []*entity.Category) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}

	prompt := fmt.Sprintf(
		"Pick the single best matching category for this transaction description.\n"+
			"Description: %q\n"+
			"Categories: %s\n"+
			"Reply with exactly one category name from the list, or NONE if nothing fits.",
		description, strings.Join(names, ", "),
	)

	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate suggestion: %w", err)
	}

	answer := extractText(resp)
	answer = strings.TrimSpace(strings.Trim(answer, "\"'`"))
	if answer == "" || strings.EqualFold(answer, "NONE") {
		return "", nil
	}
	return answer, nil
}

// Close releases the underlying client.
func (s *GeminiService) Close() {
	if s.client == nil {
		return
	}
	if err := s.client.Close(); err != nil {
		slog.Warn("failed to close gemini client", "error", err)
	}
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
