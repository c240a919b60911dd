package repositories

import (
	"context"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r UserRepository) GetByID(ctx context.Context, id domain.ID) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Preload("Role").First(&u, id).Error; err != nil {
		return nil, translateError("người dùng", err)
	}
	return &u, nil
}

func (r UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translateError("người dùng", err)
	}
	return &u, nil
}

func (r UserRepository) RoleByName(ctx context.Context, role domain.Role) (*models.Role, error) {
	var out models.Role
	if err := r.DB.WithContext(ctx).Where("name = ?", role.String()).First(&out).Error; err != nil {
		return nil, translateError("vai trò", err)
	}
	return &out, nil
}

func (r UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Omit("Role").Create(u).Error; err != nil {
		if domain.IsConflict(translateError("", err)) {
			return domain.ConflictError{Resource: "email", Msg: "email đã được sử dụng", Err: err}
		}
		return translateError("người dùng", err)
	}
	return nil
}

// UpdateFields writes the given columns of one user.
func (r UserRepository) UpdateFields(ctx context.Context, id domain.ID, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translateError("người dùng", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "người dùng"}
	}
	return nil
}
