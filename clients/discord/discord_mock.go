package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fundbackend/clients"
)

// MockDiscordBotClient implements the clients.DiscordBotClient interface for testing
type MockDiscordBotClient struct {
	mock.Mock
}

// GetGuild mocks fetching a guild document
func (m *MockDiscordBotClient) GetGuild(
	ctx context.Context,
	guildID string,
	excludeBotRoles bool,
) mo.Option[clients.DiscordDocument] {
	args := m.Called(ctx, guildID, excludeBotRoles)
	return args.Get(0).(mo.Option[clients.DiscordDocument])
}

// AddMember mocks adding a user to a guild
func (m *MockDiscordBotClient) AddMember(
	ctx context.Context,
	guildID, discordUserID, discordUserAccessToken, roleID string,
	nick mo.Option[string],
) mo.Option[clients.DiscordDocument] {
	args := m.Called(ctx, guildID, discordUserID, discordUserAccessToken, roleID, nick)
	return args.Get(0).(mo.Option[clients.DiscordDocument])
}

// AddMemberRole mocks granting a role to a guild member
func (m *MockDiscordBotClient) AddMemberRole(
	ctx context.Context,
	guildID, discordUserID, roleID string,
) mo.Option[clients.DiscordDocument] {
	args := m.Called(ctx, guildID, discordUserID, roleID)
	return args.Get(0).(mo.Option[clients.DiscordDocument])
}

// MockDiscordUserClient implements the clients.DiscordUserClient interface for testing
type MockDiscordUserClient struct {
	mock.Mock
}

// GetMe mocks fetching the user identity
func (m *MockDiscordUserClient) GetMe(ctx context.Context) mo.Option[*discordgo.User] {
	args := m.Called(ctx)
	return args.Get(0).(mo.Option[*discordgo.User])
}

// MockDiscordOAuthClient implements the clients.DiscordOAuthClient interface for testing
type MockDiscordOAuthClient struct {
	mock.Mock
}

// AuthCodeURL mocks building the consent URL
func (m *MockDiscordOAuthClient) AuthCodeURL(flow clients.DiscordOAuthFlow, state string) string {
	args := m.Called(flow, state)
	return args.String(0)
}

// Exchange mocks the authorization code exchange
func (m *MockDiscordOAuthClient) Exchange(
	ctx context.Context,
	flow clients.DiscordOAuthFlow,
	code string,
) (*clients.DiscordOAuthToken, error) {
	args := m.Called(ctx, flow, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordOAuthToken), args.Error(1)
}
