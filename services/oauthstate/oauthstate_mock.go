package oauthstate

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fundbackend/models"
)

// MockOAuthStateService is a mock implementation of the OAuthStateService interface
type MockOAuthStateService struct {
	mock.Mock
}

func (m *MockOAuthStateService) Encode(ctx context.Context, state models.OAuthState) (string, error) {
	args := m.Called(ctx, state)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthStateService) Decode(
	ctx context.Context,
	token string,
	expectedType models.OAuthAuthType,
) (models.OAuthState, error) {
	args := m.Called(ctx, token, expectedType)
	return args.Get(0).(models.OAuthState), args.Error(1)
}
