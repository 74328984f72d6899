package organizations

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"fundbackend/models"
)

// MockOrganizationsService is a mock implementation of the OrganizationsService interface
type MockOrganizationsService struct {
	mock.Mock
}

func (m *MockOrganizationsService) GetOrganizationByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Organization], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Organization]), args.Error(1)
}

func (m *MockOrganizationsService) GetOrganizationByName(
	ctx context.Context,
	name string,
) (mo.Option[*models.Organization], error) {
	args := m.Called(ctx, name)
	return args.Get(0).(mo.Option[*models.Organization]), args.Error(1)
}

// MockOrganizationsRepository is a mock implementation of the OrganizationsRepository interface
type MockOrganizationsRepository struct {
	mock.Mock
}

func (m *MockOrganizationsRepository) GetOrganizationByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Organization], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Organization]), args.Error(1)
}

func (m *MockOrganizationsRepository) GetOrganizationByName(
	ctx context.Context,
	name string,
) (mo.Option[*models.Organization], error) {
	args := m.Called(ctx, name)
	return args.Get(0).(mo.Option[*models.Organization]), args.Error(1)
}
