// Package access holds the group authorization rules shared by the services.
package access

import (
	"context"
	"errors"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
)

// CanViewProblem reports whether a member who joined at joinedAt may see a
// problem created at createdAt. Group admins see every problem.
func CanViewProblem(joinedAt, createdAt time.Time, isAdmin bool) bool {
	return isAdmin || !createdAt.Before(joinedAt)
}

// GroupAccess is the outcome of a successful membership check.
type GroupAccess struct {
	Group      *model.Group
	Membership *model.Membership
}

func (a *GroupAccess) IsAdmin() bool {
	return a.Group.AdminID == a.Membership.UserID
}

func (a *GroupAccess) CanView(p *model.Problem) bool {
	return CanViewProblem(a.Membership.JoinedAt, p.CreatedAt, a.IsAdmin())
}

type Checker struct {
	groups repository.GroupRepository
}

func NewChecker(groups repository.GroupRepository) *Checker {
	return &Checker{groups: groups}
}

// RequireMember loads the group and the actor's membership. Soft-deleted
// groups pass; callers that mutate must check Group.IsDeleted themselves.
func (c *Checker) RequireMember(ctx context.Context, groupID, userID string) (*GroupAccess, error) {
	group, err := c.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("group not found")
		}
		return nil, err
	}
	membership, err := c.groups.FindMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Forbidden("you are not a member of this group")
		}
		return nil, err
	}
	return &GroupAccess{Group: group, Membership: membership}, nil
}

// RequireAdmin checks that the live group exists and userID is its admin.
func (c *Checker) RequireAdmin(ctx context.Context, groupID, userID string) (*model.Group, error) {
	group, err := c.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("group not found")
		}
		return nil, err
	}
	if group.IsDeleted() {
		return nil, common.NotFound("group not found")
	}
	if group.AdminID != userID {
		return nil, common.Forbidden("only the group admin can do this")
	}
	return group, nil
}
