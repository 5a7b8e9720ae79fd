package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada, bo := env.signup(t, "ada"), env.signup(t, "bo")
	g := env.createGroup(t, ada, "Alg Club")
	env.addMember(t, ada, g, bo)

	easy := env.createProblem(t, ada, g, "Easy One", model.DifficultyEasy)
	medium := env.createProblem(t, ada, g, "Medium One", model.DifficultyMedium)
	hard := env.createProblem(t, ada, g, "Hard One", model.DifficultyHard)
	started := env.createProblem(t, ada, g, "Started", model.DifficultyHard)

	// One completion per day on three consecutive days.
	for i, p := range []*model.Problem{easy, medium, hard} {
		if i > 0 {
			env.store.Advance(24 * time.Hour)
		}
		_, err := env.progress.SetProgress(ctx, bo.ID, p.ID, UpdateProgressRequest{Status: model.StatusCompleted, TimeSpent: 45})
		require.NoError(t, err)
	}
	_, err := env.progress.SetProgress(ctx, bo.ID, started.ID, UpdateProgressRequest{Status: model.StatusInProgress, TimeSpent: 10})
	require.NoError(t, err)

	dash, err := env.dashboard.Stats(ctx, bo.ID)
	require.NoError(t, err)

	assert.Equal(t, bo.ID, dash.User.ID)
	assert.True(t, strings.HasPrefix(dash.User.Avatar, "https://ui-avatars.com/api/?name=bo"), dash.User.Avatar)

	s := dash.Stats
	assert.Equal(t, 60, s.Points)
	assert.Equal(t, 3, s.ProblemsSolved)
	assert.Equal(t, 135, s.TotalMinutes)
	assert.Equal(t, "2 hrs 15 mins", s.TimeSpent)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 5, s.WeeklyGoal)
	assert.Equal(t, 3, s.WeeklySolved)
	assert.Equal(t, 60, s.WeeklyProgress)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)

	require.Len(t, dash.RecentActivity, 3)
	assert.Equal(t, hard.ID, dash.RecentActivity[0].ID)
	assert.Equal(t, "Alg Club", dash.RecentActivity[0].GroupName)
	assert.Len(t, dash.Heatmap, 3)
}

func TestDashboardService_WeeklyGoalFromProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.signup(t, "ada")
	g := env.createGroup(t, ada, "Alg Club")
	p := env.createProblem(t, ada, g, "Two Sum", model.DifficultyEasy)
	_, err := env.progress.SetProgress(ctx, ada.ID, p.ID, UpdateProgressRequest{Status: model.StatusCompleted, TimeSpent: 5})
	require.NoError(t, err)

	_, err = env.users.UpdateProfile(ctx, ada.ID, UpdateProfileRequest{WeeklyGoal: intPtr(1), AvatarURL: strPtr("https://cdn.example.com/ada.png")})
	require.NoError(t, err)

	dash, err := env.dashboard.Stats(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Stats.WeeklyGoal)
	assert.Equal(t, 100, dash.Stats.WeeklyProgress)
	assert.Equal(t, "https://cdn.example.com/ada.png", dash.User.Avatar)

	_, err = env.users.UpdateProfile(ctx, ada.ID, UpdateProfileRequest{WeeklyGoal: intPtr(0)})
	require.NoError(t, err)
	dash, err = env.dashboard.Stats(ctx, ada.ID)
	require.NoError(t, err)
	assert.Zero(t, dash.Stats.WeeklyProgress)
}

func TestDashboardService_RecentActivityLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.signup(t, "ada")
	g := env.createGroup(t, ada, "Alg Club")
	for i := 0; i < 7; i++ {
		p := env.createProblem(t, ada, g, "P", model.DifficultyEasy)
		env.store.Advance(time.Minute)
		_, err := env.progress.SetProgress(ctx, ada.ID, p.ID, UpdateProgressRequest{Status: model.StatusCompleted})
		require.NoError(t, err)
	}

	dash, err := env.dashboard.Stats(ctx, ada.ID)
	require.NoError(t, err)
	assert.Len(t, dash.RecentActivity, 5)
	assert.Equal(t, 7, dash.Stats.ProblemsSolved)

	_, err = env.dashboard.Stats(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
