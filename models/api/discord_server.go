package api

import (
	"encoding/json"
	"time"
)

// DiscordServer represents the linked guild returned by the servers lookup endpoint
type DiscordServer struct {
	ID             string          `json:"id"`
	GuildID        string          `json:"guild_id"`
	GuildName      string          `json:"guild_name"`
	GuildIcon      string          `json:"guild_icon"`
	GuildMetadata  json.RawMessage `json:"guild_metadata"`
	OrganizationID string          `json:"organization_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DiscordUser is the identity returned by the user lookup endpoint
type DiscordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}
