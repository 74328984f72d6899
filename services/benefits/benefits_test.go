package benefits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx/types"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fundbackend/clients"
	"fundbackend/clients/discord"
	"fundbackend/models"
	"fundbackend/services/discordaccounts"
)

type mockOrganizationsRepository struct {
	mock.Mock
}

func (m *mockOrganizationsRepository) GetOrganizationByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Organization], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Organization]), args.Error(1)
}

type fixture struct {
	orgsRepo *mockOrganizationsRepository
	accounts *discordaccounts.MockDiscordAccountsService
	bot      *discord.MockDiscordBotClient
	service  *DiscordBenefitsService
}

func newFixture() *fixture {
	f := &fixture{
		orgsRepo: &mockOrganizationsRepository{},
		accounts: &discordaccounts.MockDiscordAccountsService{},
		bot:      &discord.MockDiscordBotClient{},
	}
	f.service = NewDiscordBenefitsService(f.orgsRepo, f.accounts, f.bot)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.orgsRepo.AssertExpectations(t)
	f.accounts.AssertExpectations(t)
	f.bot.AssertExpectations(t)
}

func discordBenefit(roleID string) *models.SubscriptionBenefit {
	props := types.JSONText(`{}`)
	if roleID != "" {
		props = types.JSONText(`{"role_id": "` + roleID + `"}`)
	}
	return &models.SubscriptionBenefit{
		ID:         "benefit-1",
		Type:       models.SubscriptionBenefitTypeDiscord,
		Properties: props,
	}
}

func subscriptionFor(orgID string) *models.Subscription {
	sub := &models.Subscription{ID: "sub-1", UserID: "user-1", SubscriptionTierID: "tier-1"}
	if orgID != "" {
		sub.TierOrganizationID = &orgID
	}
	return sub
}

func linkedOrganization() *models.Organization {
	guildID := "guild-1"
	connectedAt := time.Now()
	return &models.Organization{
		ID:                    "org-1",
		Name:                  "testorg",
		DiscordGuildID:        &guildID,
		DiscordBotConnectedAt: &connectedAt,
	}
}

func testAccount() *models.DiscordUserAccount {
	return &models.DiscordUserAccount{ID: "dua-1", UserID: "user-1", AccessToken: "user-token"}
}

var testUser = &models.User{ID: "user-1", Username: "backer"}

func TestDiscordBenefitsService_Grant(t *testing.T) {
	ctx := context.Background()

	t.Run("grants role with nick from global name", func(t *testing.T) {
		f := newFixture()
		account := testAccount()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").Return(mo.Some(linkedOrganization()), nil)
		f.accounts.On("GetAccount", ctx, "user-1").Return(mo.Some(account), nil)
		f.accounts.On("MeForAccount", ctx, account).
			Return(mo.Some(&discordgo.User{ID: "disc-1", Username: "backer", GlobalName: "Backer One"}))
		f.bot.On("AddMember", ctx, "guild-1", "disc-1", "user-token", "role-1", mo.Some("Backer One")).
			Return(mo.Some(clients.DiscordDocument{"roles": []any{"role-1"}}))

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, models.BenefitGrantStatusGranted, result.Status)
		assert.Equal(t, []any{"role-1"}, result.Member["roles"])
		assert.Equal(t, "granted", result.String())
		f.assertExpectations(t)
	})

	t.Run("omits nick when global name is empty", func(t *testing.T) {
		f := newFixture()
		account := testAccount()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").Return(mo.Some(linkedOrganization()), nil)
		f.accounts.On("GetAccount", ctx, "user-1").Return(mo.Some(account), nil)
		f.accounts.On("MeForAccount", ctx, account).Return(mo.Some(&discordgo.User{ID: "disc-1"}))
		f.bot.On("AddMember", ctx, "guild-1", "disc-1", "user-token", "role-1", mo.None[string]()).
			Return(mo.Some(clients.DiscordDocument{}))

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, models.BenefitGrantStatusGranted, result.Status)
		f.assertExpectations(t)
	})

	t.Run("discord rejection fails the grant", func(t *testing.T) {
		f := newFixture()
		account := testAccount()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").Return(mo.Some(linkedOrganization()), nil)
		f.accounts.On("GetAccount", ctx, "user-1").Return(mo.Some(account), nil)
		f.accounts.On("MeForAccount", ctx, account).Return(mo.Some(&discordgo.User{ID: "disc-1"}))
		f.bot.On("AddMember", ctx, "guild-1", "disc-1", "user-token", "role-1", mo.None[string]()).
			Return(mo.None[clients.DiscordDocument]())

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "failed:discord_add_member", result.String())
		f.assertExpectations(t)
	})

	t.Run("benefit without role is skipped", func(t *testing.T) {
		f := newFixture()

		result, err := f.service.Grant(ctx, discordBenefit(""), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_role", result.String())
		f.assertExpectations(t)
	})

	t.Run("malformed properties are skipped as missing role", func(t *testing.T) {
		f := newFixture()
		benefit := &models.SubscriptionBenefit{ID: "benefit-1", Properties: types.JSONText(`not json`)}

		result, err := f.service.Grant(ctx, benefit, subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_role", result.String())
	})

	t.Run("subscription without tier organization is skipped", func(t *testing.T) {
		f := newFixture()

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor(""), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_organization", result.String())
		f.assertExpectations(t)
	})

	t.Run("unknown organization is skipped", func(t *testing.T) {
		f := newFixture()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").Return(mo.None[*models.Organization](), nil)

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_organization", result.String())
		f.assertExpectations(t)
	})

	t.Run("organization without bot is skipped", func(t *testing.T) {
		f := newFixture()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").
			Return(mo.Some(&models.Organization{ID: "org-1", Name: "testorg"}), nil)

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_guild", result.String())
		f.assertExpectations(t)
	})

	t.Run("user without linked account is skipped", func(t *testing.T) {
		f := newFixture()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").Return(mo.Some(linkedOrganization()), nil)
		f.accounts.On("GetAccount", ctx, "user-1").Return(mo.None[*models.DiscordUserAccount](), nil)

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_account", result.String())
		f.assertExpectations(t)
	})

	t.Run("revoked user token is skipped", func(t *testing.T) {
		f := newFixture()
		account := testAccount()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").Return(mo.Some(linkedOrganization()), nil)
		f.accounts.On("GetAccount", ctx, "user-1").Return(mo.Some(account), nil)
		f.accounts.On("MeForAccount", ctx, account).Return(mo.None[*discordgo.User]())

		result, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.NoError(t, err)
		assert.Equal(t, "skipped:no_discord_identity", result.String())
		f.assertExpectations(t)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		f := newFixture()
		f.orgsRepo.On("GetOrganizationByID", ctx, "org-1").
			Return(mo.None[*models.Organization](), errors.New("connection refused"))

		_, err := f.service.Grant(ctx, discordBenefit("role-1"), subscriptionFor("org-1"), testUser)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get benefit organization")
		f.assertExpectations(t)
	})
}

func TestDiscordBenefitsService_Revoke(t *testing.T) {
	f := newFixture()

	result, err := f.service.Revoke(
		context.Background(), discordBenefit("role-1"), subscriptionFor("org-1"), testUser,
	)

	require.NoError(t, err)
	assert.Equal(t, "skipped:revoke_not_supported", result.String())
	f.assertExpectations(t)
}
