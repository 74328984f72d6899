package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"fundbackend/clients"
)

// ResendEmailSender delivers emails through the Resend API
type ResendEmailSender struct {
	client      *resend.Client
	fromAddress string
}

// NewResendEmailSender creates a sender using the given API key and From address
func NewResendEmailSender(apiKey, fromAddress string) *ResendEmailSender {
	return NewResendEmailSenderWithClient(resend.NewClient(apiKey), fromAddress)
}

// NewResendEmailSenderWithClient wraps an already configured Resend client
func NewResendEmailSenderWithClient(client *resend.Client, fromAddress string) *ResendEmailSender {
	return &ResendEmailSender{
		client:      client,
		fromAddress: fromAddress,
	}
}

// SendEmail sends the message and returns the provider's message id
func (s *ResendEmailSender) SendEmail(ctx context.Context, message clients.EmailMessage) (string, error) {
	log.Printf("📋 Starting to send email with subject %q", message.Subject)

	request := &resend.SendEmailRequest{
		From:    s.fromAddress,
		To:      []string{message.To},
		Subject: message.Subject,
		Html:    message.HTML,
		Text:    message.Text,
	}

	response, err := s.client.Emails.SendWithContext(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to send email via resend: %w", err)
	}

	log.Printf("📋 Completed successfully - sent email %s", response.Id)
	return response.Id, nil
}
