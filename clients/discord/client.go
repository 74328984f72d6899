package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"fundbackend/clients"
)

// DefaultAPIBaseURL is the versioned Discord REST API root
const DefaultAPIBaseURL = "https://discord.com/api/v10"

// DiscordClient is a thin REST facade carrying either the bot credential or a user bearer token.
// It implements both clients.DiscordBotClient and clients.DiscordUserClient.
type DiscordClient struct {
	httpClient    *http.Client
	baseURL       string
	authorization string
}

// NewDiscordBotClient creates a client that authenticates with the platform bot token
func NewDiscordBotClient(httpClient *http.Client, baseURL, botToken string) *DiscordClient {
	return newDiscordClient(httpClient, baseURL, "Bot "+botToken)
}

// NewDiscordUserClient creates a client that authenticates with a user's OAuth access token
func NewDiscordUserClient(httpClient *http.Client, baseURL, accessToken string) *DiscordClient {
	return newDiscordClient(httpClient, baseURL, "Bearer "+accessToken)
}

// NewDiscordUserClientFactory returns a factory building user clients that share one http.Client
func NewDiscordUserClientFactory(httpClient *http.Client, baseURL string) clients.DiscordUserClientFactory {
	return func(accessToken string) clients.DiscordUserClient {
		return NewDiscordUserClient(httpClient, baseURL, accessToken)
	}
}

func newDiscordClient(httpClient *http.Client, baseURL, authorization string) *DiscordClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &DiscordClient{
		httpClient:    httpClient,
		baseURL:       baseURL,
		authorization: authorization,
	}
}

// GetMe fetches the identity behind the client's credential
func (c *DiscordClient) GetMe(ctx context.Context) mo.Option[*discordgo.User] {
	status, body, err := c.do(ctx, http.MethodGet, "/users/@me", nil)
	if err != nil {
		log.Printf("❌ Discord GET /users/@me failed: %v", err)
		return mo.None[*discordgo.User]()
	}
	if !isSuccess(status) {
		log.Printf("❌ Discord GET /users/@me failed with status %d: %s", status, string(body))
		return mo.None[*discordgo.User]()
	}

	var user discordgo.User
	if err := json.Unmarshal(body, &user); err != nil {
		log.Printf("❌ Failed to decode Discord user response: %v", err)
		return mo.None[*discordgo.User]()
	}

	return mo.Some(&user)
}

// GetGuild fetches a guild document. With excludeBotRoles the roles owned by bots and
// integrations (managed roles) are dropped, keeping the order of the rest.
func (c *DiscordClient) GetGuild(
	ctx context.Context,
	guildID string,
	excludeBotRoles bool,
) mo.Option[clients.DiscordDocument] {
	path := "/guilds/" + url.PathEscape(guildID)
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		log.Printf("❌ Discord GET %s failed: %v", path, err)
		return mo.None[clients.DiscordDocument]()
	}
	if !isSuccess(status) {
		log.Printf("❌ Discord GET %s failed with status %d: %s", path, status, string(body))
		return mo.None[clients.DiscordDocument]()
	}

	var guild clients.DiscordDocument
	if err := json.Unmarshal(body, &guild); err != nil || guild == nil {
		log.Printf("❌ Failed to decode Discord guild response: %v", err)
		return mo.None[clients.DiscordDocument]()
	}

	if excludeBotRoles {
		guild = withoutManagedRoles(guild)
	}

	return mo.Some(guild)
}

// AddMember joins the user to the guild with the given role.
// Discord answers 201 with the member for a new join and 204 when the user already is a member;
// a 204 does not grant the role so it is followed by exactly one AddMemberRole call.
func (c *DiscordClient) AddMember(
	ctx context.Context,
	guildID, discordUserID, discordUserAccessToken, roleID string,
	nick mo.Option[string],
) mo.Option[clients.DiscordDocument] {
	path := fmt.Sprintf("/guilds/%s/members/%s", url.PathEscape(guildID), url.PathEscape(discordUserID))

	payload := map[string]any{
		"access_token": discordUserAccessToken,
		"roles":        []string{roleID},
	}
	if nickname, ok := nick.Get(); ok {
		payload["nick"] = nickname
	}

	status, body, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		log.Printf("❌ Discord PUT %s failed: %v", path, err)
		return mo.None[clients.DiscordDocument]()
	}

	switch status {
	case http.StatusCreated:
		var member clients.DiscordDocument
		if err := json.Unmarshal(body, &member); err != nil {
			log.Printf("❌ Failed to decode Discord member response: %v", err)
			return mo.None[clients.DiscordDocument]()
		}
		log.Printf("✅ Discord user %s joined guild %s", discordUserID, guildID)
		return mo.Some(member)
	case http.StatusNoContent:
		log.Printf("📋 Discord user %s already in guild %s, granting role %s", discordUserID, guildID, roleID)
		return c.AddMemberRole(ctx, guildID, discordUserID, roleID)
	default:
		log.Printf("❌ Discord PUT %s failed with status %d: %s", path, status, string(body))
		return mo.None[clients.DiscordDocument]()
	}
}

// AddMemberRole ensures the guild member has the role. The grant is additive on Discord's side.
func (c *DiscordClient) AddMemberRole(
	ctx context.Context,
	guildID, discordUserID, roleID string,
) mo.Option[clients.DiscordDocument] {
	path := fmt.Sprintf(
		"/guilds/%s/members/%s/roles/%s",
		url.PathEscape(guildID),
		url.PathEscape(discordUserID),
		url.PathEscape(roleID),
	)

	status, body, err := c.do(ctx, http.MethodPut, path, nil)
	if err != nil {
		log.Printf("❌ Discord PUT %s failed: %v", path, err)
		return mo.None[clients.DiscordDocument]()
	}
	if !isSuccess(status) {
		log.Printf("❌ Discord PUT %s failed with status %d: %s", path, status, string(body))
		return mo.None[clients.DiscordDocument]()
	}

	result := clients.DiscordDocument{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("❌ Failed to decode Discord role grant response: %v", err)
			return mo.None[clients.DiscordDocument]()
		}
	}

	log.Printf("✅ Granted role %s to Discord user %s in guild %s", roleID, discordUserID, guildID)
	return mo.Some(result)
}

func (c *DiscordClient) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func withoutManagedRoles(guild clients.DiscordDocument) clients.DiscordDocument {
	roles, ok := guild["roles"].([]any)
	if !ok {
		return guild
	}

	kept := make([]any, 0, len(roles))
	for _, role := range roles {
		if entry, ok := role.(map[string]any); ok {
			if managed, _ := entry["managed"].(bool); managed {
				continue
			}
		}
		kept = append(kept, role)
	}

	guild["roles"] = kept
	return guild
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
