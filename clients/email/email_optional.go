package email

import (
	"context"
	"fmt"

	"fundbackend/clients"
)

// OptionalEmailSender returns errors for all operations when email delivery is not configured
type OptionalEmailSender struct{}

// NewOptionalEmailSender creates a new optional email sender
func NewOptionalEmailSender() *OptionalEmailSender {
	return &OptionalEmailSender{}
}

func (s *OptionalEmailSender) SendEmail(ctx context.Context, message clients.EmailMessage) (string, error) {
	return "", fmt.Errorf("Service Resend is not configured")
}
