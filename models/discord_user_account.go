package models

import (
	"time"
)

// DiscordUserAccount holds the OAuth grant a platform user gave us for their Discord account
type DiscordUserAccount struct {
	ID           string     `db:"id"            json:"id"`
	AccessToken  string     `db:"access_token"  json:"-"`
	RefreshToken *string    `db:"refresh_token" json:"-"`
	ExpiresAt    int64      `db:"expires_at"    json:"expires_at"`
	Scope        string     `db:"scope"         json:"scope"`
	UserID       string     `db:"user_id"       json:"user_id"`
	CreatedAt    time.Time  `db:"created_at"    json:"created_at"`
	ModifiedAt   *time.Time `db:"modified_at"   json:"modified_at"`
	DeletedAt    *time.Time `db:"deleted_at"    json:"deleted_at"`
}
