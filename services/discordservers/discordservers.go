package discordservers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx/types"
	"github.com/samber/mo"

	"fundbackend/clients"
	"fundbackend/core"
	"fundbackend/models"
	"fundbackend/services"
)

// DiscordServersRepository defines the interface for guild link persistence
type DiscordServersRepository interface {
	UpsertDiscordServer(ctx context.Context, server *models.DiscordServer) error
	GetDiscordServerByOrganizationID(
		ctx context.Context,
		organizationID string,
	) (mo.Option[*models.DiscordServer], error)
	SoftDeleteDiscordServer(ctx context.Context, organizationID string) (bool, error)
}

// OrganizationsRepository is the writer of the organization's denormalized guild columns
type OrganizationsRepository interface {
	SetDiscordGuild(ctx context.Context, organizationID, guildID string) (*models.Organization, error)
	ClearDiscordGuild(ctx context.Context, organizationID string) (*models.Organization, error)
}

type DiscordServersService struct {
	discordServersRepo DiscordServersRepository
	organizationsRepo  OrganizationsRepository
	botClient          clients.DiscordBotClient
	txManager          services.TransactionManager
}

func NewDiscordServersService(
	discordServersRepo DiscordServersRepository,
	organizationsRepo OrganizationsRepository,
	botClient clients.DiscordBotClient,
	txManager services.TransactionManager,
) *DiscordServersService {
	return &DiscordServersService{
		discordServersRepo: discordServersRepo,
		organizationsRepo:  organizationsRepo,
		botClient:          botClient,
		txManager:          txManager,
	}
}

// LinkGuild records the guild on the organization. The guild itself is not verified with Discord.
func (s *DiscordServersService) LinkGuild(
	ctx context.Context,
	organizationID, guildID string,
) (*models.Organization, error) {
	log.Printf("📋 Starting to link guild %s to organization %s", guildID, organizationID)
	if guildID == "" {
		return nil, fmt.Errorf("discord guild ID cannot be empty")
	}

	organization, err := s.organizationsRepo.SetDiscordGuild(ctx, organizationID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to link discord guild: %w", err)
	}

	log.Printf("📋 Completed successfully - linked guild %s to organization %s", guildID, organizationID)
	return organization, nil
}

// CreateDiscordServer persists the bot install from the OAuth token and links the guild,
// both in one transaction so the organization columns never drift from the link row.
func (s *DiscordServersService) CreateDiscordServer(
	ctx context.Context,
	organizationID string,
	token *clients.DiscordOAuthToken,
) (*models.DiscordServer, error) {
	log.Printf("📋 Starting to create Discord server for organization: %s", organizationID)
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID cannot be empty")
	}

	server, err := discordServerFromToken(organizationID, token)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.discordServersRepo.UpsertDiscordServer(ctx, server); err != nil {
			return fmt.Errorf("failed to store discord server: %w", err)
		}
		if _, err := s.LinkGuild(ctx, organizationID, server.GuildID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - created Discord server %s for guild %s", server.ID, server.GuildID)
	return server, nil
}

// UnlinkGuild soft-deletes the guild link and clears the organization columns in one transaction.
// Returns core.ErrNotFound when the organization has no live link.
func (s *DiscordServersService) UnlinkGuild(ctx context.Context, organizationID string) (*models.Organization, error) {
	log.Printf("📋 Starting to unlink Discord guild from organization: %s", organizationID)
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID cannot be empty")
	}

	var organization *models.Organization
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.discordServersRepo.SoftDeleteDiscordServer(ctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to delete discord server: %w", err)
		}
		if !deleted {
			return fmt.Errorf("discord server for organization %s: %w", organizationID, core.ErrNotFound)
		}

		organization, err = s.organizationsRepo.ClearDiscordGuild(ctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to unlink discord guild: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - unlinked Discord guild from organization %s", organizationID)
	return organization, nil
}

// GetGuild returns the live guild with bot roles removed. Organizations without a bot install
// short-circuit to None without calling Discord.
func (s *DiscordServersService) GetGuild(
	ctx context.Context,
	organization *models.Organization,
) mo.Option[clients.DiscordDocument] {
	if organization == nil || !organization.HasDiscordBot() {
		return mo.None[clients.DiscordDocument]()
	}

	return s.botClient.GetGuild(ctx, *organization.DiscordGuildID, true)
}

func (s *DiscordServersService) GetDiscordServerByOrganizationID(
	ctx context.Context,
	organizationID string,
) (mo.Option[*models.DiscordServer], error) {
	log.Printf("📋 Starting to get Discord server for organization: %s", organizationID)

	server, err := s.discordServersRepo.GetDiscordServerByOrganizationID(ctx, organizationID)
	if err != nil {
		return mo.None[*models.DiscordServer](), fmt.Errorf("failed to get discord server: %w", err)
	}

	log.Printf("📋 Completed successfully - Discord server present: %t", server.IsPresent())
	return server, nil
}

func discordServerFromToken(organizationID string, token *clients.DiscordOAuthToken) (*models.DiscordServer, error) {
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("access token not found in Discord OAuth response")
	}
	if token.Guild == nil {
		return nil, fmt.Errorf("guild not found in Discord OAuth response")
	}

	guildID, _ := token.Guild["id"].(string)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID not found in Discord OAuth response")
	}
	guildName, _ := token.Guild["name"].(string)
	guildIcon, _ := token.Guild["icon"].(string)

	// roles are fetched live, the stored metadata omits them
	metadata := make(map[string]any, len(token.Guild))
	for key, value := range token.Guild {
		if key == "roles" {
			continue
		}
		metadata[key] = value
	}
	encodedMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode guild metadata: %w", err)
	}

	server := &models.DiscordServer{
		ID:             core.NewID("ds"),
		GuildID:        guildID,
		GuildName:      guildName,
		GuildIcon:      guildIcon,
		AccessToken:    token.AccessToken,
		GuildMetadata:  types.JSONText(encodedMetadata),
		OrganizationID: organizationID,
	}
	if token.RefreshToken != "" {
		refreshToken := token.RefreshToken
		server.RefreshToken = &refreshToken
	}
	if token.ExpiresAt != 0 {
		expiresAt := token.ExpiresAt
		server.ExpiresAt = &expiresAt
	}

	return server, nil
}
