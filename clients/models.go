package clients

// DiscordDocument is a free-form JSON object as returned by the Discord API
type DiscordDocument map[string]any

// DiscordOAuthFlow selects which OAuth application settings (scopes, redirect) are used
type DiscordOAuthFlow string

const (
	DiscordOAuthFlowServer DiscordOAuthFlow = "server"
	DiscordOAuthFlowUser   DiscordOAuthFlow = "user"
)

// DiscordOAuthToken represents our OAuth token response with only needed fields
type DiscordOAuthToken struct {
	AccessToken  string
	RefreshToken string
	Scope        string
	// ExpiresAt is a unix timestamp in seconds, zero when the provider sent no expiry
	ExpiresAt int64
	// Guild is only present for bot installs
	Guild DiscordDocument
}

// EmailMessage holds parameters for sending an email
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}
