package benefits

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"fundbackend/clients"
	"fundbackend/models"
	"fundbackend/services"
)

// OrganizationsRepository resolves the organization owning a subscription tier
type OrganizationsRepository interface {
	GetOrganizationByID(ctx context.Context, id string) (mo.Option[*models.Organization], error)
}

// DiscordBenefitsService grants the Discord role configured on a subscription benefit
type DiscordBenefitsService struct {
	organizationsRepo OrganizationsRepository
	accountsService   services.DiscordAccountsService
	botClient         clients.DiscordBotClient
}

func NewDiscordBenefitsService(
	organizationsRepo OrganizationsRepository,
	accountsService services.DiscordAccountsService,
	botClient clients.DiscordBotClient,
) *DiscordBenefitsService {
	return &DiscordBenefitsService{
		organizationsRepo: organizationsRepo,
		accountsService:   accountsService,
		botClient:         botClient,
	}
}

// Grant adds the subscriber to the organization's guild with the benefit's role.
// Missing prerequisites skip the grant without calling Discord; database errors are returned.
func (s *DiscordBenefitsService) Grant(
	ctx context.Context,
	benefit *models.SubscriptionBenefit,
	subscription *models.Subscription,
	user *models.User,
) (models.BenefitGrantResult, error) {
	log.Printf("📋 Starting to grant Discord benefit %s to user %s", benefit.ID, user.ID)

	result, err := s.grant(ctx, benefit, subscription, user)
	if err != nil {
		return models.BenefitGrantResult{}, err
	}

	switch result.Status {
	case models.BenefitGrantStatusGranted:
		log.Printf("📋 Completed successfully - granted Discord benefit %s to user %s", benefit.ID, user.ID)
	case models.BenefitGrantStatusFailed:
		log.Printf("❌ Failed to grant Discord benefit %s to user %s: %s", benefit.ID, user.ID, result)
	default:
		log.Printf("📋 Completed successfully - Discord benefit %s for user %s %s", benefit.ID, user.ID, result)
	}
	return result, nil
}

func (s *DiscordBenefitsService) grant(
	ctx context.Context,
	benefit *models.SubscriptionBenefit,
	subscription *models.Subscription,
	user *models.User,
) (models.BenefitGrantResult, error) {
	roleID := benefit.DiscordProperties().RoleID
	if roleID == "" {
		return models.SkippedBenefit(models.BenefitGrantReasonNoRole), nil
	}

	if subscription.TierOrganizationID == nil {
		return models.SkippedBenefit(models.BenefitGrantReasonNoOrganization), nil
	}
	maybeOrg, err := s.organizationsRepo.GetOrganizationByID(ctx, *subscription.TierOrganizationID)
	if err != nil {
		return models.BenefitGrantResult{}, fmt.Errorf("failed to get benefit organization: %w", err)
	}
	organization, ok := maybeOrg.Get()
	if !ok {
		return models.SkippedBenefit(models.BenefitGrantReasonNoOrganization), nil
	}

	if !organization.HasDiscordBot() {
		return models.SkippedBenefit(models.BenefitGrantReasonNoGuild), nil
	}

	maybeAccount, err := s.accountsService.GetAccount(ctx, user.ID)
	if err != nil {
		return models.BenefitGrantResult{}, fmt.Errorf("failed to get discord account: %w", err)
	}
	account, ok := maybeAccount.Get()
	if !ok {
		return models.SkippedBenefit(models.BenefitGrantReasonNoAccount), nil
	}

	me, ok := s.accountsService.MeForAccount(ctx, account).Get()
	if !ok {
		return models.SkippedBenefit(models.BenefitGrantReasonNoDiscordIdentity), nil
	}

	nick := mo.None[string]()
	if me.GlobalName != "" {
		nick = mo.Some(me.GlobalName)
	}

	member, ok := s.botClient.AddMember(
		ctx,
		*organization.DiscordGuildID,
		me.ID,
		account.AccessToken,
		roleID,
		nick,
	).Get()
	if !ok {
		return models.FailedBenefit(models.BenefitGrantReasonDiscordAddMember), nil
	}

	return models.GrantedBenefit(member), nil
}

// Revoke leaves the role in place; removal on cancellation is not supported
func (s *DiscordBenefitsService) Revoke(
	ctx context.Context,
	benefit *models.SubscriptionBenefit,
	subscription *models.Subscription,
	user *models.User,
) (models.BenefitGrantResult, error) {
	log.Printf("⚠️ Discord benefit revocation is not supported, keeping role for user %s", user.ID)
	return models.SkippedBenefit(models.BenefitGrantReasonRevokeNotSupported), nil
}
