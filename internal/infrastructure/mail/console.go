// Package mail implements the credential side channel: when an admin
// approves a tutor, the generated password is handed to a Mailer so it
// reaches the tutor outside the API response.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleMailer writes credential notifications to the log instead of
// sending them. It is the default in development and wherever no SendGrid
// key is configured.
type ConsoleMailer struct {
	logger zerolog.Logger
}

func NewConsoleMailer(logger zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) SendTutorCredentials(_ context.Context, name, email, applicationID, password string) error {
	m.logger.Info().
		Str("to", email).
		Str("name", name).
		Str("application_id", applicationID).
		Str("temp_password", password).
		Msg("tutor credentials (console mailer)")
	return nil
}
