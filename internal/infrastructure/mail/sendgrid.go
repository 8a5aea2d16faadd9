package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers credential notifications through the SendGrid API.
type SendGridMailer struct {
	client    *sendgrid.Client
	from      *sgmail.Email
	appName   string
	loginHint string
}

func NewSendGridMailer(apiKey, appName, fromEmail, loginURL string) *SendGridMailer {
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		from:      sgmail.NewEmail(appName, fromEmail),
		appName:   appName,
		loginHint: loginURL,
	}
}

func (m *SendGridMailer) SendTutorCredentials(ctx context.Context, name, email, applicationID, password string) error {
	subject := fmt.Sprintf("[%s] Your tutor application %s was approved", m.appName, applicationID)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour tutor application %s has been approved.\n\n"+
			"You can now sign in with this temporary password: %s\n\n"+
			"Please change it after your first login.\n%s\n",
		name, applicationID, password, m.loginHint,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your tutor application <b>%s</b> has been approved.</p>"+
			"<p>You can now sign in with this temporary password: <code>%s</code></p>"+
			"<p>Please change it after your first login.</p>",
		name, applicationID, password,
	)

	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(name, email), plain, html)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
