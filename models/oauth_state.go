package models

type OAuthAuthType string

const (
	OAuthAuthTypeServer OAuthAuthType = "server"
	OAuthAuthTypeUser   OAuthAuthType = "user"
)

// OAuthState is round-tripped through Discord's state parameter.
// Server installs carry the organization, user links carry the platform user.
type OAuthState struct {
	AuthType         OAuthAuthType
	OrganizationID   string
	OrganizationName string
	UserID           string
}
