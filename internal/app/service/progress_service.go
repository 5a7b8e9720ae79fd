package service

import (
	"context"
	"errors"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/domain/stats"
	"dsa_arena/internal/platform/metrics"
)

const maxTimeSpent = 100000

type ProgressService struct {
	problemRepo  repository.ProblemRepository
	progressRepo repository.ProgressRepository
	access       *access.Checker
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewProgressService(
	problemRepo repository.ProblemRepository,
	progressRepo repository.ProgressRepository,
	checker *access.Checker,
	m *metrics.Metrics,
) *ProgressService {
	return &ProgressService{
		problemRepo:  problemRepo,
		progressRepo: progressRepo,
		access:       checker,
		metrics:      m,
		now:          time.Now,
	}
}

type UpdateProgressRequest struct {
	Status    model.ProgressStatus `json:"status" validate:"required,oneof=not_started in_progress completed"`
	TimeSpent int                  `json:"time_spent" validate:"min=0,max=100000"`
	Notes     *string              `json:"notes" validate:"omitempty,max=10000"`
}

func (s *ProgressService) SetProgress(ctx context.Context, userID, problemID string, req UpdateProgressRequest) (*model.Progress, error) {
	if req.Status == "" {
		return nil, common.Validation("status is required")
	}
	if !req.Status.Valid() {
		return nil, common.Validation("invalid status")
	}
	if req.TimeSpent < 0 || req.TimeSpent > maxTimeSpent {
		return nil, common.Validation("time_spent must be between 0 and %d minutes", maxTimeSpent)
	}

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
	ga, err := s.access.RequireMember(ctx, problem.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if !ga.CanView(problem) {
		return nil, common.Forbidden("this problem was added before you joined the group")
	}

	row := &model.Progress{
		UserID:    userID,
		ProblemID: problemID,
		Status:    req.Status,
		TimeSpent: req.TimeSpent,
		Notes:     req.Notes,
	}
	if req.Status == model.StatusCompleted {
		now := s.now()
		row.CompletedAt = &now
	}
	saved, err := s.progressRepo.Upsert(ctx, row)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProgressUpdates.WithLabelValues(string(saved.Status)).Inc()
	}
	return saved, nil
}

// GetProgress returns the caller's row, or the not-started default.
func (s *ProgressService) GetProgress(ctx context.Context, userID, problemID string) (*model.Progress, error) {
	row, err := s.progressRepo.Find(ctx, userID, problemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.DefaultProgress(userID, problemID), nil
		}
		return nil, err
	}
	return row, nil
}

func (s *ProgressService) MyProblems(ctx context.Context, userID string) ([]model.UserProblem, error) {
	return s.progressRepo.ListUserProblems(ctx, userID)
}

func (s *ProgressService) Leaderboard(ctx context.Context, userID, groupID string) ([]model.LeaderboardEntry, error) {
	if _, err := s.access.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	entries, err := s.progressRepo.GroupLeaderboard(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return stats.RankLeaderboard(entries), nil
}
