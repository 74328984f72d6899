package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"fundbackend/clients"
)

// DefaultOAuthBaseURL hosts the authorize and token endpoints
const DefaultOAuthBaseURL = "https://discord.com/api"

var (
	serverFlowScopes = []string{"bot"}
	userFlowScopes   = []string{"identify", "email", "guilds.join"}
)

// OAuthSettings holds the application credentials and the public URLs of our callbacks
type OAuthSettings struct {
	ClientID       string
	ClientSecret   string
	BotPermissions string
	// PublicBaseURL is where this API is reachable from the browser, without trailing slash
	PublicBaseURL string
	// OAuthBaseURL overrides DefaultOAuthBaseURL, used by tests
	OAuthBaseURL string
}

// DiscordOAuthClient runs the authorization-code flows for bot installs and account linking
type DiscordOAuthClient struct {
	httpClient     *http.Client
	configs        map[clients.DiscordOAuthFlow]*oauth2.Config
	botPermissions string
}

// NewDiscordOAuthClient builds one oauth2.Config per flow
func NewDiscordOAuthClient(httpClient *http.Client, settings OAuthSettings) *DiscordOAuthClient {
	oauthBase := settings.OAuthBaseURL
	if oauthBase == "" {
		oauthBase = DefaultOAuthBaseURL
	}
	endpoint := oauth2.Endpoint{
		AuthURL:   oauthBase + "/oauth2/authorize",
		TokenURL:  oauthBase + "/oauth2/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	callbackBase := strings.TrimRight(settings.PublicBaseURL, "/") + "/api/v1/integrations/discord"

	return &DiscordOAuthClient{
		httpClient:     httpClient,
		botPermissions: settings.BotPermissions,
		configs: map[clients.DiscordOAuthFlow]*oauth2.Config{
			clients.DiscordOAuthFlowServer: {
				ClientID:     settings.ClientID,
				ClientSecret: settings.ClientSecret,
				RedirectURL:  callbackBase + "/callback",
				Scopes:       serverFlowScopes,
				Endpoint:     endpoint,
			},
			clients.DiscordOAuthFlowUser: {
				ClientID:     settings.ClientID,
				ClientSecret: settings.ClientSecret,
				RedirectURL:  callbackBase + "/user_callback",
				Scopes:       userFlowScopes,
				Endpoint:     endpoint,
			},
		},
	}
}

// AuthCodeURL returns the Discord consent URL for the flow carrying the signed state
func (c *DiscordOAuthClient) AuthCodeURL(flow clients.DiscordOAuthFlow, state string) string {
	cfg := c.config(flow)
	if flow == clients.DiscordOAuthFlowServer && c.botPermissions != "" {
		return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("permissions", c.botPermissions))
	}
	return cfg.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token
func (c *DiscordOAuthClient) Exchange(
	ctx context.Context,
	flow clients.DiscordOAuthFlow,
	code string,
) (*clients.DiscordOAuthToken, error) {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	tok, err := c.config(flow).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange discord %s authorization code: %w", flow, err)
	}

	result := &clients.DiscordOAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		result.Scope = scope
	}
	if !tok.Expiry.IsZero() {
		result.ExpiresAt = tok.Expiry.Unix()
	}
	if guild, ok := tok.Extra("guild").(map[string]any); ok {
		result.Guild = clients.DiscordDocument(guild)
	}

	return result, nil
}

func (c *DiscordOAuthClient) config(flow clients.DiscordOAuthFlow) *oauth2.Config {
	cfg, ok := c.configs[flow]
	if !ok {
		panic(fmt.Sprintf("unknown discord oauth flow %q", flow))
	}
	return cfg
}
