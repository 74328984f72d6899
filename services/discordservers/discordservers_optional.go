package discordservers

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"fundbackend/clients"
	"fundbackend/models"
)

// OptionalDiscordServersService returns errors for all operations when Discord is not configured
type OptionalDiscordServersService struct{}

// NewOptionalDiscordServersService creates a new optional Discord servers service
func NewOptionalDiscordServersService() *OptionalDiscordServersService {
	return &OptionalDiscordServersService{}
}

func (s *OptionalDiscordServersService) LinkGuild(
	ctx context.Context,
	organizationID, guildID string,
) (*models.Organization, error) {
	return nil, fmt.Errorf("Service Discord is not configured")
}

func (s *OptionalDiscordServersService) CreateDiscordServer(
	ctx context.Context,
	organizationID string,
	token *clients.DiscordOAuthToken,
) (*models.DiscordServer, error) {
	return nil, fmt.Errorf("Service Discord is not configured")
}

func (s *OptionalDiscordServersService) UnlinkGuild(
	ctx context.Context,
	organizationID string,
) (*models.Organization, error) {
	return nil, fmt.Errorf("Service Discord is not configured")
}

func (s *OptionalDiscordServersService) GetGuild(
	ctx context.Context,
	organization *models.Organization,
) mo.Option[clients.DiscordDocument] {
	return mo.None[clients.DiscordDocument]()
}

func (s *OptionalDiscordServersService) GetDiscordServerByOrganizationID(
	ctx context.Context,
	organizationID string,
) (mo.Option[*models.DiscordServer], error) {
	return mo.None[*models.DiscordServer](), fmt.Errorf("Service Discord is not configured")
}
