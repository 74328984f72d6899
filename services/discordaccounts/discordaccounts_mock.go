package discordaccounts

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fundbackend/clients"
	"fundbackend/models"
)

// MockDiscordAccountsService is a mock implementation of the DiscordAccountsService interface
type MockDiscordAccountsService struct {
	mock.Mock
}

func (m *MockDiscordAccountsService) LinkUserAccount(
	ctx context.Context,
	userID string,
	token *clients.DiscordOAuthToken,
) (*models.DiscordUserAccount, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordUserAccount), args.Error(1)
}

func (m *MockDiscordAccountsService) GetAccount(
	ctx context.Context,
	userID string,
) (mo.Option[*models.DiscordUserAccount], error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(mo.Option[*models.DiscordUserAccount]), args.Error(1)
}

func (m *MockDiscordAccountsService) Me(ctx context.Context, userID string) (mo.Option[*discordgo.User], error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(mo.Option[*discordgo.User]), args.Error(1)
}

func (m *MockDiscordAccountsService) MeForAccount(
	ctx context.Context,
	account *models.DiscordUserAccount,
) mo.Option[*discordgo.User] {
	args := m.Called(ctx, account)
	return args.Get(0).(mo.Option[*discordgo.User])
}

func (m *MockDiscordAccountsService) UserClientFor(account *models.DiscordUserAccount) clients.DiscordUserClient {
	args := m.Called(account)
	return args.Get(0).(clients.DiscordUserClient)
}
