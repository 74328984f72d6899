package models

import (
	"time"
)

type User struct {
	ID             string    `db:"id"               json:"id"`
	AuthProvider   string    `db:"auth_provider"    json:"auth_provider"`
	AuthProviderID string    `db:"auth_provider_id" json:"auth_provider_id"`
	Username       string    `db:"username"         json:"username"`
	Email          string    `db:"email"            json:"email"`
	OrganizationID *string   `db:"organization_id"  json:"organization_id"`
	CreatedAt      time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"       json:"updated_at"`
}

// BelongsTo reports whether the user is a member of the given organization
func (u *User) BelongsTo(organizationID string) bool {
	return u.OrganizationID != nil && *u.OrganizationID == organizationID
}
