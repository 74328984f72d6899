package models

import (
	"time"
)

type Organization struct {
	ID                    string     `db:"id"                       json:"id"`
	Name                  string     `db:"name"                     json:"name"`
	DiscordGuildID        *string    `db:"discord_guild_id"         json:"discord_guild_id"`
	DiscordBotConnectedAt *time.Time `db:"discord_bot_connected_at" json:"discord_bot_connected_at"`
	CreatedAt             time.Time  `db:"created_at"               json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"               json:"updated_at"`
}

// HasDiscordBot reports whether a bot install has been recorded for the organization.
// The columns are written only by the guild link operation.
func (o *Organization) HasDiscordBot() bool {
	return o.DiscordGuildID != nil && *o.DiscordGuildID != "" && o.DiscordBotConnectedAt != nil
}
