package services

import (
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
	"busbooking/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = domain.UnauthorizedError{Msg: "Email hoặc mật khẩu không đúng"}

type AuthService struct {
	Users     repositories.UserRepository
	Tokens    *TokenManager
	RequestID string
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string            `json:"accessToken"`
	User        models.PublicUser `json:"user"`
}

func (s AuthService) hash(password string) (string, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", domain.InternalError{Msg: "không thể mã hóa mật khẩu", Err: err}
	}
	return string(b), nil
}

func (s AuthService) createUser(ctx context.Context, fullName, email, phone, password string, role domain.Role) (*models.User, error) {
	r, err := s.Users.RoleByName(ctx, role)
	if err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FullName:     utils.NormalizeSpace(fullName),
		Email:        utils.NormalizeEmail(email),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		RoleID:       r.ID,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	u.Role = r
	return u, nil
}

// Register creates a customer account.
func (s AuthService) Register(ctx context.Context, in validation.SignUp) (*models.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	u, err := s.createUser(ctx, in.FullName, in.Email, in.Phone, in.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}

// CreateUser is the back-office variant of Register with a chosen role.
func (s AuthService) CreateUser(ctx context.Context, in validation.AdminCreateUser) (*models.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, domain.ValidationError{Field: "role", Msg: "vai trò không hợp lệ", Err: err}
	}
	u, err := s.createUser(ctx, in.FullName, in.Email, in.Phone, in.Password, role)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "auth", "create_user", fmt.Sprintf("user_id=%d role=%s", u.ID, role))
	return u, nil
}

func (s AuthService) Login(ctx context.Context, in validation.SignIn) (*LoginResult, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	u, err := s.Users.FindByEmail(ctx, utils.NormalizeEmail(in.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errBadCredentials
	}
	if !u.IsActive {
		return nil, domain.ForbiddenError{Msg: "Tài khoản đã bị khóa"}
	}
	token, err := s.Tokens.Generate(u.ID, u.RoleName())
	if err != nil {
		return nil, domain.InternalError{Msg: "không thể tạo phiên đăng nhập", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return &LoginResult{AccessToken: token, User: u.ToPublic()}, nil
}

func (s AuthService) Me(ctx context.Context, userID domain.ID) (*models.User, error) {
	return s.Users.GetByID(ctx, userID)
}

func (s AuthService) UpdateProfile(ctx context.Context, userID domain.ID, in validation.UpdateProfile) (*models.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"full_name": utils.NormalizeSpace(in.FullName),
		"phone":     strings.TrimSpace(in.Phone),
	}
	if err := s.Users.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, userID)
}

// UpdateAvatar stores an already uploaded image URL.
func (s AuthService) UpdateAvatar(ctx context.Context, userID domain.ID, in validation.UpdateAvatar) (*models.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	if err := s.Users.UpdateFields(ctx, userID, map[string]any{"avatar_url": strings.TrimSpace(in.AvatarURL)}); err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, userID)
}

func (s AuthService) ChangePassword(ctx context.Context, userID domain.ID, in validation.ChangePassword) error {
	if err := validation.Check(in); err != nil {
		return err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ValidationError{
			Msg:    "Mật khẩu hiện tại không đúng",
			Fields: []domain.FieldError{{Field: "currentPassword", Message: "Mật khẩu hiện tại không đúng"}},
		}
	}
	hash, err := s.hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdateFields(ctx, userID, map[string]any{"password_hash": hash}); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "change_password", fmt.Sprintf("user_id=%d", userID))
	return nil
}
