package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// DiscordServer links an organization to the Discord guild its bot was installed in.
// At most one live row exists per organization.
type DiscordServer struct {
	ID             string         `db:"id"              json:"id"`
	GuildID        string         `db:"guild_id"        json:"guild_id"`
	GuildName      string         `db:"guild_name"      json:"guild_name"`
	GuildIcon      string         `db:"guild_icon"      json:"guild_icon"`
	AccessToken    string         `db:"access_token"    json:"-"`
	RefreshToken   *string        `db:"refresh_token"   json:"-"`
	ExpiresAt      *int64         `db:"expires_at"      json:"-"`
	GuildMetadata  types.JSONText `db:"guild_metadata"  json:"guild_metadata"`
	OrganizationID string         `db:"organization_id" json:"organization_id"`
	CreatedAt      time.Time      `db:"created_at"      json:"created_at"`
	ModifiedAt     *time.Time     `db:"modified_at"     json:"modified_at"`
	DeletedAt      *time.Time     `db:"deleted_at"      json:"deleted_at"`
}
