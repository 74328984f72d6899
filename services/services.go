package services

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"fundbackend/clients"
	"fundbackend/models"
)

// UsersService defines the interface for user-related operations
type UsersService interface {
	GetOrCreateUser(ctx context.Context, authProvider, authProviderID, username, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error)
}

// OrganizationsService defines the interface for organization-related operations
type OrganizationsService interface {
	GetOrganizationByID(ctx context.Context, id string) (mo.Option[*models.Organization], error)
	GetOrganizationByName(ctx context.Context, name string) (mo.Option[*models.Organization], error)
}

// OAuthStateService signs and verifies the state carried through Discord's OAuth redirects
type OAuthStateService interface {
	Encode(ctx context.Context, state models.OAuthState) (string, error)
	Decode(ctx context.Context, token string, expectedType models.OAuthAuthType) (models.OAuthState, error)
}

// DiscordServersService links organizations to the Discord guild their bot was installed in
type DiscordServersService interface {
	LinkGuild(ctx context.Context, organizationID, guildID string) (*models.Organization, error)
	CreateDiscordServer(
		ctx context.Context,
		organizationID string,
		token *clients.DiscordOAuthToken,
	) (*models.DiscordServer, error)
	UnlinkGuild(ctx context.Context, organizationID string) (*models.Organization, error)
	GetGuild(ctx context.Context, organization *models.Organization) mo.Option[clients.DiscordDocument]
	GetDiscordServerByOrganizationID(
		ctx context.Context,
		organizationID string,
	) (mo.Option[*models.DiscordServer], error)
}

// DiscordAccountsService links platform users to their Discord accounts
type DiscordAccountsService interface {
	LinkUserAccount(
		ctx context.Context,
		userID string,
		token *clients.DiscordOAuthToken,
	) (*models.DiscordUserAccount, error)
	GetAccount(ctx context.Context, userID string) (mo.Option[*models.DiscordUserAccount], error)
	Me(ctx context.Context, userID string) (mo.Option[*discordgo.User], error)
	MeForAccount(ctx context.Context, account *models.DiscordUserAccount) mo.Option[*discordgo.User]
	UserClientFor(account *models.DiscordUserAccount) clients.DiscordUserClient
}

// BenefitsService provisions subscription benefits on Discord
type BenefitsService interface {
	Grant(
		ctx context.Context,
		benefit *models.SubscriptionBenefit,
		subscription *models.Subscription,
		user *models.User,
	) (models.BenefitGrantResult, error)
	Revoke(
		ctx context.Context,
		benefit *models.SubscriptionBenefit,
		subscription *models.Subscription,
		user *models.User,
	) (models.BenefitGrantResult, error)
}

// NotificationsService turns notification records into emails
type NotificationsService interface {
	EmailMetadata(
		ctx context.Context,
		user *models.User,
		notification *models.Notification,
	) (mo.Option[models.EmailMetadata], error)
	RenderEmail(metadata models.EmailMetadata) (string, error)
	Subject(metadata models.EmailMetadata) string
	SendEmail(ctx context.Context, user *models.User, notificationID string) (bool, error)
}

// TransactionManager handles database transactions via context
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
