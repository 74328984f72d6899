package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	ClientID       string
	ClientSecret   string
	BotToken       string
	BotPermissions string
	APIBaseURL     string // Optional with default https://discord.com/api/v10
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.ClientID != "" &&
		c.ClientSecret != "" &&
		c.BotToken != ""
	// Note: BotPermissions is optional, Discord then asks for none
}

type ClerkConfig struct {
	SecretKey string
}

// IsConfigured returns true if all required Clerk configuration is present
func (c ClerkConfig) IsConfigured() bool {
	return c.SecretKey != ""
}

type ResendConfig struct {
	APIKey      string
	FromAddress string
}

// IsConfigured returns true if all required Resend configuration is present
func (c ResendConfig) IsConfigured() bool {
	return c.APIKey != "" &&
		c.FromAddress != ""
}

type RedisConfig struct {
	URL string
}

// IsConfigured returns true if a Redis connection URL is present
func (c RedisConfig) IsConfigured() bool {
	return c.URL != ""
}

type SlackConfig struct {
	AlertWebhookURL string
}

// IsConfigured returns true if the alert webhook is present
func (c SlackConfig) IsConfigured() bool {
	return c.AlertWebhookURL != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	SecretKey          string // Signs OAuth state tokens
	PublicBaseURL      string // Where this API is reachable, used for OAuth redirect URIs
	FrontendBaseURL    string // Where the web app lives, used for post-OAuth redirects
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	DiscordConfig DiscordConfig
	ClerkConfig   ClerkConfig
	ResendConfig  ResendConfig
	RedisConfig   RedisConfig
	SlackConfig   SlackConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	secretKey, err := getEnvRequired("SECRET")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		SecretKey:          secretKey,
		PublicBaseURL:      strings.TrimRight(getEnvWithDefault("PUBLIC_BASE_URL", "http://127.0.0.1:8080"), "/"),
		FrontendBaseURL:    strings.TrimRight(getEnvWithDefault("FRONTEND_BASE_URL", "http://127.0.0.1:3000"), "/"),
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		// Discord configuration (optional)
		DiscordConfig: DiscordConfig{
			ClientID:       os.Getenv("DISCORD_CLIENT_ID"),
			ClientSecret:   os.Getenv("DISCORD_CLIENT_SECRET"),
			BotToken:       os.Getenv("DISCORD_BOT_TOKEN"),
			BotPermissions: os.Getenv("DISCORD_BOT_PERMISSIONS"),
			APIBaseURL:     getEnvWithDefault("DISCORD_API_BASE_URL", "https://discord.com/api/v10"),
		},

		// Clerk configuration (optional)
		ClerkConfig: ClerkConfig{
			SecretKey: os.Getenv("CLERK_SECRET_KEY"),
		},

		// Resend configuration (optional)
		ResendConfig: ResendConfig{
			APIKey:      os.Getenv("RESEND_API_KEY"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		},

		// Redis configuration (optional)
		RedisConfig: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},

		// Slack configuration (optional)
		SlackConfig: SlackConfig{
			AlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}

	// Log which integrations are configured
	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord integration configured")
	} else {
		log.Printf("⚠️ Discord integration not configured - Discord features will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("discord integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.ClerkConfig.IsConfigured() {
		log.Printf("✅ Clerk authentication configured")
	} else {
		log.Printf("⚠️ Clerk authentication not configured - Dashboard authentication will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("clerk authentication is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.ResendConfig.IsConfigured() {
		log.Printf("✅ Resend email delivery configured")
	} else {
		log.Printf("⚠️ Resend email delivery not configured - notification emails will not be sent")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("resend email delivery is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.RedisConfig.IsConfigured() {
		log.Printf("✅ Redis configured")
	} else {
		log.Printf("⚠️ Redis not configured - OAuth state tokens will not be single-use")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("redis is not configured (USE_STRICT_CONFIG=true)")
		}
	}

	// Slack alerting is optional even in strict mode
	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack error alerts configured")
	} else {
		log.Printf("⚠️ Slack error alerts not configured")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
