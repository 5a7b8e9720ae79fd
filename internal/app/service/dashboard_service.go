package service

import (
	"context"
	"errors"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/domain/stats"
)

const recentActivityLimit = 5

type DashboardService struct {
	userRepo  repository.UserRepository
	statsRepo repository.StatsRepository
	now       func() time.Time
}

func NewDashboardService(userRepo repository.UserRepository, statsRepo repository.StatsRepository) *DashboardService {
	return &DashboardService{userRepo: userRepo, statsRepo: statsRepo, now: time.Now}
}

func (s *DashboardService) Stats(ctx context.Context, userID string) (*model.Dashboard, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("user not found")
		}
		return nil, err
	}

	now := s.now()
	totals, err := s.statsRepo.CompletionTotals(ctx, userID, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}
	recent, err := s.statsRepo.RecentCompletions(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	heatmap, err := s.statsRepo.ActivityHeatmap(ctx, userID, stats.HeatmapStart(now))
	if err != nil {
		return nil, err
	}
	current, longest := stats.Streaks(heatmap, now)

	return &model.Dashboard{
		User: model.DashboardUser{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Avatar: user.Avatar(),
		},
		Stats: model.DashboardStats{
			Points:         totals.Points,
			ProblemsSolved: totals.ProblemsSolved,
			TimeSpent:      stats.FormatMinutes(totals.TotalMinutes),
			TotalMinutes:   totals.TotalMinutes,
			InProgress:     totals.InProgress,
			WeeklyGoal:     user.WeeklyGoal,
			WeeklySolved:   totals.WeeklySolved,
			WeeklyProgress: stats.WeeklyProgress(totals.WeeklySolved, user.WeeklyGoal),
			CurrentStreak:  current,
			LongestStreak:  longest,
		},
		RecentActivity: recent,
		Heatmap:        heatmap,
	}, nil
}
