package benefits

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fundbackend/models"
)

// MockBenefitsService is a mock implementation of the BenefitsService interface
type MockBenefitsService struct {
	mock.Mock
}

func (m *MockBenefitsService) Grant(
	ctx context.Context,
	benefit *models.SubscriptionBenefit,
	subscription *models.Subscription,
	user *models.User,
) (models.BenefitGrantResult, error) {
	args := m.Called(ctx, benefit, subscription, user)
	return args.Get(0).(models.BenefitGrantResult), args.Error(1)
}

func (m *MockBenefitsService) Revoke(
	ctx context.Context,
	benefit *models.SubscriptionBenefit,
	subscription *models.Subscription,
	user *models.User,
) (models.BenefitGrantResult, error) {
	args := m.Called(ctx, benefit, subscription, user)
	return args.Get(0).(models.BenefitGrantResult), args.Error(1)
}
