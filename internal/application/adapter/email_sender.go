// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import "context"

// EmailSender dispatches transactional email.
type EmailSender interface {
	// SendWelcome sends the welcome email to a newly registered user.
	SendWelcome(ctx context.Context, to, name string) error
}
