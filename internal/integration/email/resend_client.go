// Package email contains the outbound email integration.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendClient sends transactional email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a new ResendClient instance. Returns nil when the
// API key is empty so callers can treat email as disabled.
func NewResendClient(apiKey, from string) *ResendClient {
	if apiKey == "" {
		return nil
	}
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendWelcome sends the post-registration welcome email.
func (c *ResendClient) SendWelcome(ctx context.Context, to, name string) error {
	greeting := name
	if greeting == "" {
		greeting = "there"
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: "Welcome to Budget Tracker",
		Html: fmt.Sprintf(
			"<h1>Welcome, %s!</h1><p>Your account is ready. Start by creating a few categories and recording your first transaction.</p>",
			greeting,
		),
	}

	if _, err := c.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
