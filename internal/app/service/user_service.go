package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileRequest fields are optional; a nil field keeps its stored value.
type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=100"`
	Bio            *string `json:"bio" validate:"omitempty,max=1000"`
	AvatarURL      *string `json:"avatar_url" validate:"omitempty,url"`
	WeeklyGoal     *int    `json:"weekly_goal" validate:"omitempty,min=0,max=100"`
	GithubUsername *string `json:"github_username" validate:"omitempty,max=100"`
	LinkedinURL    *string `json:"linkedin_url" validate:"omitempty,url"`
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, common.Validation("name cannot be empty")
		}
		req.Name = &name
	}
	if req.WeeklyGoal != nil && (*req.WeeklyGoal < 0 || *req.WeeklyGoal > 100) {
		return nil, common.Validation("weekly goal must be between 0 and 100")
	}
	if req.LinkedinURL != nil && *req.LinkedinURL != "" {
		if u, err := url.ParseRequestURI(*req.LinkedinURL); err != nil || u.Host == "" {
			return nil, common.Validation("linkedin_url must be a valid URL")
		}
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, model.ProfileUpdate{
		Name:           req.Name,
		Bio:            req.Bio,
		AvatarURL:      req.AvatarURL,
		WeeklyGoal:     req.WeeklyGoal,
		GithubUsername: req.GithubUsername,
		LinkedinURL:    req.LinkedinURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
