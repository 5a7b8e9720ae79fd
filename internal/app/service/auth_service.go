package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dsa_arena/internal/common"
	"dsa_arena/internal/common/security"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/platform/logger"

	"github.com/google/uuid"
)

const minPasswordLength = 6

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenIssuer
	log      *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenIssuer, log *logger.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, log: log}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// NormalizeEmail is applied before every insert and lookup by email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, common.Validation("name, email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, common.Validation("password must be at least %d characters", minPasswordLength)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		WeeklyGoal:     model.DefaultWeeklyGoal,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.log.Info("User signed up", "user_id", user.ID)
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, common.Validation("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}

// Me returns the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
