package ports

import "context"

// WelcomeEmail carries the fields interpolated into the welcome message.
type WelcomeEmail struct {
	To      string
	Surname string
}

// Mailer performs a single transactional email delivery.
type Mailer interface {
	SendWelcome(ctx context.Context, msg WelcomeEmail) error
}
