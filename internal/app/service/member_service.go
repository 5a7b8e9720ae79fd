package service

import (
	"context"
	"errors"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/platform/logger"
)

type MemberService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	access    *access.Checker
	log       *logger.Logger
}

func NewMemberService(groupRepo repository.GroupRepository, userRepo repository.UserRepository, checker *access.Checker, log *logger.Logger) *MemberService {
	return &MemberService{groupRepo: groupRepo, userRepo: userRepo, access: checker, log: log}
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *MemberService) ListMembers(ctx context.Context, userID, groupID string) ([]model.Member, error) {
	if _, err := s.access.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(ctx, groupID)
}

func (s *MemberService) AddMember(ctx context.Context, userID, groupID string, req AddMemberRequest) (*model.Member, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, common.Validation("email is required")
	}
	if _, err := s.access.RequireAdmin(ctx, groupID, userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("no user with this email")
		}
		return nil, err
	}

	_, err = s.groupRepo.FindMembership(ctx, groupID, user.ID)
	switch {
	case err == nil:
		return nil, common.Validation("user is already a member of this group")
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	membership, err := s.groupRepo.AddMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("Member added", "group_id", groupID, "user_id", user.ID)
	return &model.Member{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		JoinedAt: membership.JoinedAt,
		IsAdmin:  false,
	}, nil
}

func (s *MemberService) RemoveMember(ctx context.Context, userID, groupID, memberID string) error {
	group, err := s.access.RequireAdmin(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if memberID == group.AdminID {
		return common.Validation("the group admin cannot be removed")
	}
	if err := s.groupRepo.RemoveMember(ctx, groupID, memberID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("user is not a member of this group")
		}
		return err
	}
	s.log.Info("Member removed", "group_id", groupID, "user_id", memberID)
	return nil
}
