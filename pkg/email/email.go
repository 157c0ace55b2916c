package email

// Sender delivers account lifecycle mail. Delivery is best-effort: callers
// must not fail the triggering operation when sending fails.
type Sender interface {
	// SendWelcomeEmail notifies a newly created user of their account.
	SendWelcomeEmail(to, name, tenantName string) error
}

// Config holds the sender configuration.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}
