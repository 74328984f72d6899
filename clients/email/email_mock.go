package email

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fundbackend/clients"
)

// MockEmailSender implements the clients.EmailSender interface for testing
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, message clients.EmailMessage) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
