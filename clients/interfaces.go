package clients

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
)

// DiscordBotClient performs guild-level calls authenticated with the platform bot token.
// Failures are logged and reported as None.
type DiscordBotClient interface {
	GetGuild(ctx context.Context, guildID string, excludeBotRoles bool) mo.Option[DiscordDocument]
	AddMember(
		ctx context.Context,
		guildID, discordUserID, discordUserAccessToken, roleID string,
		nick mo.Option[string],
	) mo.Option[DiscordDocument]
	AddMemberRole(ctx context.Context, guildID, discordUserID, roleID string) mo.Option[DiscordDocument]
}

// DiscordUserClient performs calls on behalf of a single user with their OAuth bearer token
type DiscordUserClient interface {
	GetMe(ctx context.Context) mo.Option[*discordgo.User]
}

// DiscordUserClientFactory builds a user client from a stored access token
type DiscordUserClientFactory func(accessToken string) DiscordUserClient

// DiscordOAuthClient wraps the authorization-code flows used for bot installs and user linking
type DiscordOAuthClient interface {
	AuthCodeURL(flow DiscordOAuthFlow, state string) string
	Exchange(ctx context.Context, flow DiscordOAuthFlow, code string) (*DiscordOAuthToken, error)
}

// EmailSender delivers rendered notification emails
type EmailSender interface {
	SendEmail(ctx context.Context, message EmailMessage) (string, error)
}
