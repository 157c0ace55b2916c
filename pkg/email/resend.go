package email

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using Resend.
type ResendSender struct {
	client *resend.Client
	config Config
}

func NewResendSender(config Config) (*ResendSender, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendSender{
		client: resend.NewClient(config.APIKey),
		config: config,
	}, nil
}

func (s *ResendSender) SendWelcomeEmail(to, name, tenantName string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: fmt.Sprintf("Welcome to %s", tenantName),
		Html:    welcomeTemplate(name, tenantName),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func welcomeTemplate(name, tenantName string) string {
	return fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 560px; margin: 0 auto;">
			<h2>Welcome, %s!</h2>
			<p>An account has been created for you in the <strong>%s</strong> workspace.</p>
			<p>You can now sign in with your email address and the password you were given.</p>
			<p style="color: #888; font-size: 12px;">If you were not expecting this email, you can ignore it.</p>
		</div>`, name, tenantName)
}
