package user

import (
	"context"
	"errors"
	"strings"

	"ecomcart-be/internal/auth"
	"ecomcart-be/internal/logger"
	"ecomcart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	Resolve(ctx context.Context, token string) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Register"))

	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, RoleUser)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed", zap.String("user_id", u.ID))
	return &AuthResult{User: u, Token: token}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Login"))

	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingLogin
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		log.Info("email not found")
		return nil, ErrInvalidCredentials
	}
	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password not match", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	u.Password = ""
	return &AuthResult{User: u, Token: token}, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error) {
	var params UpdateParams

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		params.Name = &name
	}

	if input.Email != nil {
		email := utils.NormalizeEmail(*input.Email)
		if !utils.IsValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		params.Email = &email
	}

	if input.Password != nil {
		if len(*input.Password) < minPasswordLen {
			return nil, ErrPasswordTooShort
		}
		hashed, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, userID, params)
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Resolve turns a bearer token into an active user. Every failure is an
// Unauthenticated error.
func (s *service) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		logger.FromCtx(ctx).Info("token rejected", zap.Error(err))
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrTokenUserNotFound
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrTokenUserNotFound
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	return u, nil
}
