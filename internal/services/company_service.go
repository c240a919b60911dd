package services

import (
	"context"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
)

// CompanyService serves the company area for the owner of a bus company.
type CompanyService struct {
	Companies repositories.CompanyRepository
}

func (s CompanyService) Profile(ctx context.Context, ownerID domain.ID) (*models.BusCompany, error) {
	c, err := s.Companies.ByOwner(ctx, ownerID)
	if err != nil && domain.IsNotFound(err) {
		return nil, domain.NotFoundError{Resource: "nhà xe của tài khoản", Err: err}
	}
	return c, err
}

func (s CompanyService) Policies(ctx context.Context, ownerID domain.ID) ([]models.CompanyPolicy, error) {
	c, err := s.Profile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.Companies.Policies(ctx, c.ID)
}

func (s CompanyService) CancellationRules(ctx context.Context, ownerID domain.ID) ([]models.CancellationRule, error) {
	c, err := s.Profile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.Companies.CancellationRules(ctx, c.ID)
}
