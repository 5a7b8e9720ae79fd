package service

import (
	"context"
	"errors"
	"strings"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ProblemService struct {
	problemRepo repository.ProblemRepository
	access      *access.Checker
	log         *logger.Logger
}

func NewProblemService(problemRepo repository.ProblemRepository, checker *access.Checker, log *logger.Logger) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, access: checker, log: log}
}

type CreateProblemRequest struct {
	Title        string                  `json:"title" validate:"required,max=200"`
	Description  string                  `json:"description" validate:"required"`
	Examples     *string                 `json:"examples"`
	Constraints  *string                 `json:"constraints"`
	PlatformLink *string                 `json:"platform_link" validate:"omitempty,url"`
	Difficulty   model.ProblemDifficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Points       *int                    `json:"points" validate:"omitempty,min=0"`
}

type UpdateProblemRequest struct {
	Title        *string                  `json:"title,omitempty" validate:"omitempty,max=200"`
	Description  *string                  `json:"description,omitempty"`
	Examples     *string                  `json:"examples,omitempty"`
	Constraints  *string                  `json:"constraints,omitempty"`
	PlatformLink *string                  `json:"platform_link,omitempty" validate:"omitempty,url"`
	Difficulty   *model.ProblemDifficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Points       *int                     `json:"points,omitempty" validate:"omitempty,min=1"`
}

// ProblemDetail is a problem as seen by one member.
type ProblemDetail struct {
	model.Problem
	IsAdmin bool `json:"is_admin"`
}

func (s *ProblemService) CreateProblem(ctx context.Context, userID, groupID string, req CreateProblemRequest) (*model.Problem, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, common.Validation("title and description are required")
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, common.Validation("difficulty must be one of easy, medium, hard")
	}
	points := difficulty.DefaultPoints()
	if req.Points != nil {
		switch {
		case *req.Points < 0:
			return nil, common.Validation("points must be positive")
		case *req.Points > 0:
			points = *req.Points
		}
	}

	if _, err := s.access.RequireAdmin(ctx, groupID, userID); err != nil {
		return nil, err
	}

	problem := &model.Problem{
		ID:           uuid.NewString(),
		GroupID:      groupID,
		Title:        title,
		Slug:         problemSlug(title),
		Description:  description,
		Examples:     req.Examples,
		Constraints:  req.Constraints,
		PlatformLink: req.PlatformLink,
		Difficulty:   difficulty,
		Points:       points,
		CreatedByID:  userID,
	}
	if err := s.problemRepo.CreateForGroup(ctx, problem); err != nil {
		return nil, err
	}
	s.log.Info("Problem created", "problem_id", problem.ID, "group_id", groupID)
	return problem, nil
}

func (s *ProblemService) ListGroupProblems(ctx context.Context, userID, groupID string) ([]model.Problem, error) {
	if _, err := s.access.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.problemRepo.ListVisible(ctx, groupID, userID)
}

func (s *ProblemService) GetProblem(ctx context.Context, userID, problemID string) (*ProblemDetail, error) {
	problem, err := s.findLive(ctx, problemID)
	if err != nil {
		return nil, err
	}
	ga, err := s.access.RequireMember(ctx, problem.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if !ga.CanView(problem) {
		return nil, common.Forbidden("this problem was added before you joined the group")
	}
	return &ProblemDetail{Problem: *problem, IsAdmin: ga.IsAdmin()}, nil
}

func (s *ProblemService) UpdateProblem(ctx context.Context, userID, problemID string, req UpdateProblemRequest) (*model.Problem, error) {
	problem, err := s.findLive(ctx, problemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.RequireAdmin(ctx, problem.GroupID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, common.Validation("title cannot be empty")
		}
		problem.Title = title
		problem.Slug = problemSlug(title)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, common.Validation("description cannot be empty")
		}
		problem.Description = description
	}
	if req.Examples != nil {
		problem.Examples = req.Examples
	}
	if req.Constraints != nil {
		problem.Constraints = req.Constraints
	}
	if req.PlatformLink != nil {
		problem.PlatformLink = req.PlatformLink
	}
	if req.Difficulty != nil {
		if !req.Difficulty.Valid() {
			return nil, common.Validation("difficulty must be one of easy, medium, hard")
		}
		if *req.Difficulty != problem.Difficulty && req.Points == nil {
			problem.Points = req.Difficulty.DefaultPoints()
		}
		problem.Difficulty = *req.Difficulty
	}
	if req.Points != nil {
		if *req.Points <= 0 {
			return nil, common.Validation("points must be positive")
		}
		problem.Points = *req.Points
	}

	if err := s.problemRepo.Update(ctx, problem); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("problem not found")
		}
		return nil, err
	}
	return problem, nil
}

func (s *ProblemService) DeleteProblem(ctx context.Context, userID, problemID string) error {
	problem, err := s.findLive(ctx, problemID)
	if err != nil {
		return err
	}
	if _, err := s.access.RequireAdmin(ctx, problem.GroupID, userID); err != nil {
		return err
	}
	if err := s.problemRepo.SoftDelete(ctx, problemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("problem not found")
		}
		return err
	}
	s.log.Info("Problem deleted", "problem_id", problemID, "group_id", problem.GroupID)
	return nil
}

// findLive loads a problem that has not been soft-deleted.
func (s *ProblemService) findLive(ctx context.Context, problemID string) (*model.Problem, error) {
	problem, err := s.problemRepo.FindByID(ctx, problemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("problem not found")
		}
		return nil, err
	}
	if problem.IsDeleted() {
		return nil, common.NotFound("problem not found")
	}
	return problem, nil
}

// maxSlugLen keeps slugs inside problems.slug (VARCHAR(220)). Transliteration
// can make a slug several times longer than its title.
const maxSlugLen = 200

// problemSlug is the URL slug for title, cut to fit the column. slug.Make
// only emits ASCII so cutting on a byte boundary is safe.
func problemSlug(title string) string {
	s := slug.Make(title)
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}
