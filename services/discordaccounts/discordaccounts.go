package discordaccounts

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"fundbackend/clients"
	"fundbackend/core"
	"fundbackend/models"
)

// DiscordUserAccountsRepository defines the interface for user account link persistence
type DiscordUserAccountsRepository interface {
	CreateDiscordUserAccount(ctx context.Context, account *models.DiscordUserAccount) error
	GetDiscordUserAccountByUserID(
		ctx context.Context,
		userID string,
	) (mo.Option[*models.DiscordUserAccount], error)
}

type DiscordAccountsService struct {
	accountsRepo      DiscordUserAccountsRepository
	userClientFactory clients.DiscordUserClientFactory
}

func NewDiscordAccountsService(
	accountsRepo DiscordUserAccountsRepository,
	userClientFactory clients.DiscordUserClientFactory,
) *DiscordAccountsService {
	return &DiscordAccountsService{
		accountsRepo:      accountsRepo,
		userClientFactory: userClientFactory,
	}
}

// LinkUserAccount stores the user's Discord grant. A user or token that is already linked
// returns core.ErrAlreadyExists.
func (s *DiscordAccountsService) LinkUserAccount(
	ctx context.Context,
	userID string,
	token *clients.DiscordOAuthToken,
) (*models.DiscordUserAccount, error) {
	log.Printf("📋 Starting to link Discord account for user: %s", userID)
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("access token not found in Discord OAuth response")
	}

	account := &models.DiscordUserAccount{
		ID:           core.NewID("dua"),
		AccessToken:  token.AccessToken,
		ExpiresAt:    token.ExpiresAt,
		Scope:        token.Scope,
		UserID:       userID,
	}
	// grants without a refresh token store NULL so the unique key does not collide on ''
	if token.RefreshToken != "" {
		refreshToken := token.RefreshToken
		account.RefreshToken = &refreshToken
	}

	if err := s.accountsRepo.CreateDiscordUserAccount(ctx, account); err != nil {
		if core.IsAlreadyExistsError(err) {
			log.Printf("⚠️ Discord account already linked for user: %s", userID)
		}
		return nil, fmt.Errorf("failed to link discord account: %w", err)
	}

	log.Printf("📋 Completed successfully - linked Discord account %s for user %s", account.ID, userID)
	return account, nil
}

func (s *DiscordAccountsService) GetAccount(
	ctx context.Context,
	userID string,
) (mo.Option[*models.DiscordUserAccount], error) {
	account, err := s.accountsRepo.GetDiscordUserAccountByUserID(ctx, userID)
	if err != nil {
		return mo.None[*models.DiscordUserAccount](), fmt.Errorf("failed to get discord account: %w", err)
	}
	return account, nil
}

// Me returns the Discord identity of the user's linked account, None when no account is linked
func (s *DiscordAccountsService) Me(ctx context.Context, userID string) (mo.Option[*discordgo.User], error) {
	account, err := s.GetAccount(ctx, userID)
	if err != nil {
		return mo.None[*discordgo.User](), err
	}

	linked, ok := account.Get()
	if !ok {
		return mo.None[*discordgo.User](), nil
	}

	return s.MeForAccount(ctx, linked), nil
}

// MeForAccount asks Discord who the stored token belongs to
func (s *DiscordAccountsService) MeForAccount(
	ctx context.Context,
	account *models.DiscordUserAccount,
) mo.Option[*discordgo.User] {
	return s.UserClientFor(account).GetMe(ctx)
}

// UserClientFor builds a client authenticated with the account's stored token.
// Callers keep the returned client for as long as their request needs it.
func (s *DiscordAccountsService) UserClientFor(account *models.DiscordUserAccount) clients.DiscordUserClient {
	return s.userClientFactory(account.AccessToken)
}
