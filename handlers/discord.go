package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/bwmarrin/discordgo"

	"fundbackend/clients"
	"fundbackend/core"
	"fundbackend/models"
	"fundbackend/services"
)

type DiscordAPIHandler struct {
	organizationsService services.OrganizationsService
	serversService       services.DiscordServersService
	accountsService      services.DiscordAccountsService
	oauthStateService    services.OAuthStateService
	oauthClient          clients.DiscordOAuthClient
	frontendBaseURL      string
}

func NewDiscordAPIHandler(
	organizationsService services.OrganizationsService,
	serversService services.DiscordServersService,
	accountsService services.DiscordAccountsService,
	oauthStateService services.OAuthStateService,
	oauthClient clients.DiscordOAuthClient,
	frontendBaseURL string,
) *DiscordAPIHandler {
	return &DiscordAPIHandler{
		organizationsService: organizationsService,
		serversService:       serversService,
		accountsService:      accountsService,
		oauthStateService:    oauthStateService,
		oauthClient:          oauthClient,
		frontendBaseURL:      frontendBaseURL,
	}
}

// ServerAuthorizationURL returns the bot install URL for an organization the user belongs to
func (h *DiscordAPIHandler) ServerAuthorizationURL(
	ctx context.Context,
	user *models.User,
	organizationName string,
) (string, error) {
	org, err := h.memberOrganization(ctx, user, organizationName)
	if err != nil {
		return "", err
	}

	state, err := h.oauthStateService.Encode(ctx, models.OAuthState{
		AuthType:         models.OAuthAuthTypeServer,
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode server oauth state: %w", err)
	}

	return h.oauthClient.AuthCodeURL(clients.DiscordOAuthFlowServer, state), nil
}

// CompleteServerInstall finishes the bot install and returns the frontend URL to land on.
// Only a bad state is an error; install failures redirect with discord_setup=0.
func (h *DiscordAPIHandler) CompleteServerInstall(ctx context.Context, code, rawState string) (string, error) {
	state, err := h.oauthStateService.Decode(ctx, rawState, models.OAuthAuthTypeServer)
	if err != nil {
		return "", err
	}

	success := h.installServer(ctx, state, code)
	log.Printf("📋 Discord bot install for organization %s finished, success: %t", state.OrganizationID, success)

	flag := "0"
	if success {
		flag = "1"
	}
	return fmt.Sprintf(
		"%s/maintainer/%s/integrations?discord_setup=%s",
		h.frontendBaseURL,
		url.PathEscape(state.OrganizationName),
		flag,
	), nil
}

func (h *DiscordAPIHandler) installServer(ctx context.Context, state models.OAuthState, code string) bool {
	if code == "" {
		log.Printf("❌ Discord bot install callback without code")
		return false
	}

	token, err := h.oauthClient.Exchange(ctx, clients.DiscordOAuthFlowServer, code)
	if err != nil {
		log.Printf("❌ Failed to exchange Discord bot install code: %v", err)
		return false
	}

	if _, err := h.serversService.CreateDiscordServer(ctx, state.OrganizationID, token); err != nil {
		log.Printf("❌ Failed to create Discord server for organization %s: %v", state.OrganizationID, err)
		return false
	}
	return true
}

// UserAuthorizationURL returns the account linking URL for the user
func (h *DiscordAPIHandler) UserAuthorizationURL(ctx context.Context, user *models.User) (string, error) {
	state, err := h.oauthStateService.Encode(ctx, models.OAuthState{
		AuthType: models.OAuthAuthTypeUser,
		UserID:   user.ID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode user oauth state: %w", err)
	}

	return h.oauthClient.AuthCodeURL(clients.DiscordOAuthFlowUser, state), nil
}

// CompleteUserLink links the caller's Discord account and returns the settings URL to land on
func (h *DiscordAPIHandler) CompleteUserLink(
	ctx context.Context,
	user *models.User,
	code, rawState string,
) (string, error) {
	state, err := h.oauthStateService.Decode(ctx, rawState, models.OAuthAuthTypeUser)
	if err != nil {
		return "", err
	}
	if state.UserID != user.ID {
		log.Printf("❌ OAuth state user %s does not match caller %s", state.UserID, user.ID)
		return "", fmt.Errorf("oauth state belongs to another user: %w", core.ErrUnauthorized)
	}
	if code == "" {
		return "", fmt.Errorf("missing authorization code: %w", core.ErrUnauthorized)
	}

	token, err := h.oauthClient.Exchange(ctx, clients.DiscordOAuthFlowUser, code)
	if err != nil {
		return "", err
	}

	status := "connected"
	if _, err := h.accountsService.LinkUserAccount(ctx, user.ID, token); err != nil {
		if !errors.Is(err, core.ErrAlreadyExists) {
			return "", err
		}
		status = "already_connected"
	}

	return fmt.Sprintf("%s/settings?discord_account=%s", h.frontendBaseURL, status), nil
}

// LookupServer returns the stored guild link of an organization the user belongs to
func (h *DiscordAPIHandler) LookupServer(
	ctx context.Context,
	user *models.User,
	organizationName string,
) (*models.DiscordServer, error) {
	org, err := h.memberOrganization(ctx, user, organizationName)
	if err != nil {
		return nil, err
	}

	maybeServer, err := h.serversService.GetDiscordServerByOrganizationID(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	server, ok := maybeServer.Get()
	if !ok {
		return nil, fmt.Errorf("discord server for organization %s: %w", org.ID, core.ErrNotFound)
	}
	return server, nil
}

// UnlinkServer removes the bot install of an organization the user belongs to
func (h *DiscordAPIHandler) UnlinkServer(
	ctx context.Context,
	user *models.User,
	organizationName string,
) error {
	org, err := h.memberOrganization(ctx, user, organizationName)
	if err != nil {
		return err
	}

	if _, err := h.serversService.UnlinkGuild(ctx, org.ID); err != nil {
		return err
	}
	return nil
}

// LookupGuild returns the live guild of an organization the user belongs to, without bot roles
func (h *DiscordAPIHandler) LookupGuild(
	ctx context.Context,
	user *models.User,
	organizationName string,
) (clients.DiscordDocument, error) {
	org, err := h.memberOrganization(ctx, user, organizationName)
	if err != nil {
		return nil, err
	}

	guild, ok := h.serversService.GetGuild(ctx, org).Get()
	if !ok {
		return nil, fmt.Errorf("discord guild for organization %s: %w", org.ID, core.ErrNotFound)
	}
	return guild, nil
}

// DiscordUser returns the Discord identity linked to the user
func (h *DiscordAPIHandler) DiscordUser(ctx context.Context, user *models.User) (*discordgo.User, error) {
	maybeMe, err := h.accountsService.Me(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	me, ok := maybeMe.Get()
	if !ok {
		return nil, fmt.Errorf("discord identity for user %s: %w", user.ID, core.ErrNotFound)
	}
	return me, nil
}

func (h *DiscordAPIHandler) memberOrganization(
	ctx context.Context,
	user *models.User,
	organizationName string,
) (*models.Organization, error) {
	maybeOrg, err := h.organizationsService.GetOrganizationByName(ctx, organizationName)
	if err != nil {
		return nil, err
	}
	org, ok := maybeOrg.Get()
	if !ok {
		return nil, fmt.Errorf("organization %q: %w", organizationName, core.ErrNotFound)
	}
	if !user.BelongsTo(org.ID) {
		return nil, fmt.Errorf("user %s is not a member of organization %s: %w", user.ID, org.ID, core.ErrForbidden)
	}
	return org, nil
}
