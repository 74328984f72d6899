package organizations

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"fundbackend/core"
	"fundbackend/models"
)

// OrganizationsRepository defines the interface for organization lookups
type OrganizationsRepository interface {
	GetOrganizationByID(ctx context.Context, id string) (mo.Option[*models.Organization], error)
	GetOrganizationByName(ctx context.Context, name string) (mo.Option[*models.Organization], error)
}

type OrganizationsService struct {
	organizationsRepo OrganizationsRepository
}

func NewOrganizationsService(repo OrganizationsRepository) *OrganizationsService {
	return &OrganizationsService{organizationsRepo: repo}
}

func (s *OrganizationsService) GetOrganizationByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Organization], error) {
	log.Printf("📋 Starting to get organization by ID: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.Organization](), fmt.Errorf("organization ID must be a valid ULID")
	}

	organization, err := s.organizationsRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return mo.None[*models.Organization](), fmt.Errorf("failed to get organization by ID: %w", err)
	}

	if organization.IsPresent() {
		log.Printf("📋 Completed successfully - retrieved organization with ID: %s", id)
	} else {
		log.Printf("📋 Completed successfully - organization not found with ID: %s", id)
	}
	return organization, nil
}

func (s *OrganizationsService) GetOrganizationByName(
	ctx context.Context,
	name string,
) (mo.Option[*models.Organization], error) {
	log.Printf("📋 Starting to get organization by name: %s", name)
	if name == "" {
		return mo.None[*models.Organization](), fmt.Errorf("organization name cannot be empty")
	}

	organization, err := s.organizationsRepo.GetOrganizationByName(ctx, name)
	if err != nil {
		return mo.None[*models.Organization](), fmt.Errorf("failed to get organization by name: %w", err)
	}

	if organization.IsPresent() {
		log.Printf("📋 Completed successfully - retrieved organization %s", name)
	} else {
		log.Printf("📋 Completed successfully - organization not found with name: %s", name)
	}
	return organization, nil
}
