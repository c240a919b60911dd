package repositories

import (
	"context"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	DB *gorm.DB
}

// ByOwner returns the company owned by the given user account.
func (r CompanyRepository) ByOwner(ctx context.Context, userID domain.ID) (*models.BusCompany, error) {
	var c models.BusCompany
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", userID).Order("id ASC").First(&c).Error; err != nil {
		return nil, translateError("nhà xe", err)
	}
	return &c, nil
}

func (r CompanyRepository) Policies(ctx context.Context, companyID domain.ID) ([]models.CompanyPolicy, error) {
	policies := []models.CompanyPolicy{}
	err := r.DB.WithContext(ctx).
		Where("bus_company_id = ? AND is_active = ?", companyID, true).
		Order("policy_type ASC, id ASC").
		Find(&policies).Error
	return policies, translateError("chính sách", err)
}

// CancellationRules lists the active rules, longest notice first.
func (r CompanyRepository) CancellationRules(ctx context.Context, companyID domain.ID) ([]models.CancellationRule, error) {
	rules := []models.CancellationRule{}
	err := r.DB.WithContext(ctx).
		Where("bus_company_id = ? AND is_active = ?", companyID, true).
		Order("time_before_departure DESC, id ASC").
		Find(&rules).Error
	return rules, translateError("quy định hủy vé", err)
}
