package discordservers

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fundbackend/clients"
	"fundbackend/models"
)

// MockDiscordServersService is a mock implementation of the DiscordServersService interface
type MockDiscordServersService struct {
	mock.Mock
}

func (m *MockDiscordServersService) LinkGuild(
	ctx context.Context,
	organizationID, guildID string,
) (*models.Organization, error) {
	args := m.Called(ctx, organizationID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockDiscordServersService) CreateDiscordServer(
	ctx context.Context,
	organizationID string,
	token *clients.DiscordOAuthToken,
) (*models.DiscordServer, error) {
	args := m.Called(ctx, organizationID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordServer), args.Error(1)
}

func (m *MockDiscordServersService) UnlinkGuild(
	ctx context.Context,
	organizationID string,
) (*models.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockDiscordServersService) GetGuild(
	ctx context.Context,
	organization *models.Organization,
) mo.Option[clients.DiscordDocument] {
	args := m.Called(ctx, organization)
	return args.Get(0).(mo.Option[clients.DiscordDocument])
}

func (m *MockDiscordServersService) GetDiscordServerByOrganizationID(
	ctx context.Context,
	organizationID string,
) (mo.Option[*models.DiscordServer], error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(mo.Option[*models.DiscordServer]), args.Error(1)
}
