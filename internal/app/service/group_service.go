package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/platform/logger"

	"github.com/google/uuid"
)

const maxGroupNameLength = 100

type GroupService struct {
	groupRepo repository.GroupRepository
	access    *access.Checker
	log       *logger.Logger
}

func NewGroupService(groupRepo repository.GroupRepository, checker *access.Checker, log *logger.Logger) *GroupService {
	return &GroupService{groupRepo: groupRepo, access: checker, log: log}
}

type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (s *GroupService) CreateGroup(ctx context.Context, userID string, req CreateGroupRequest) (*model.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, common.Validation("group name is required")
	}
	if utf8.RuneCountInString(name) > maxGroupNameLength {
		return nil, common.Validation("group name must be at most %d characters", maxGroupNameLength)
	}

	group := &model.Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		AdminID:     userID,
	}
	if err := s.groupRepo.CreateWithAdmin(ctx, group); err != nil {
		return nil, err
	}
	s.log.Info("Group created", "group_id", group.ID, "admin_id", userID)
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]model.Group, error) {
	return s.groupRepo.ListForUser(ctx, userID)
}

// GetGroup returns the group to any member, including after it was soft-deleted.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*model.Group, error) {
	ga, err := s.access.RequireMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	return ga.Group, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID string) error {
	if _, err := s.access.RequireAdmin(ctx, groupID, userID); err != nil {
		return err
	}
	if err := s.groupRepo.SoftDelete(ctx, groupID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("group not found")
		}
		return err
	}
	s.log.Info("Group deleted", "group_id", groupID, "admin_id", userID)
	return nil
}
