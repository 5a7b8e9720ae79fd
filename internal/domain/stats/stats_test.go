package stats

import (
	"testing"
	"time"

	"dsa_arena/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLeaderboard(t *testing.T) {
	t.Run("more solved wins a points tie", func(t *testing.T) {
		entries := RankLeaderboard([]model.LeaderboardEntry{
			{UserID: "a", Name: "A", TotalPoints: 50, ProblemsSolved: 3, TotalTime: 100},
			{UserID: "b", Name: "B", TotalPoints: 50, ProblemsSolved: 4, TotalTime: 80},
		})
		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[0].UserID)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, "a", entries[1].UserID)
		assert.Equal(t, 2, entries[1].Rank)
	})

	t.Run("less time breaks a solved tie", func(t *testing.T) {
		entries := RankLeaderboard([]model.LeaderboardEntry{
			{UserID: "slow", Name: "Slow", TotalPoints: 30, ProblemsSolved: 2, TotalTime: 90},
			{UserID: "fast", Name: "Fast", TotalPoints: 30, ProblemsSolved: 2, TotalTime: 45},
			{UserID: "top", Name: "Top", TotalPoints: 70, ProblemsSolved: 1, TotalTime: 500},
		})
		ids := []string{entries[0].UserID, entries[1].UserID, entries[2].UserID}
		assert.Equal(t, []string{"top", "fast", "slow"}, ids)
	})

	t.Run("full tie falls back to name then id", func(t *testing.T) {
		entries := RankLeaderboard([]model.LeaderboardEntry{
			{UserID: "2", Name: "Zed"},
			{UserID: "9", Name: "Amy"},
			{UserID: "1", Name: "Amy"},
		})
		assert.Equal(t, "1", entries[0].UserID)
		assert.Equal(t, "9", entries[1].UserID)
		assert.Equal(t, "2", entries[2].UserID)
		assert.Equal(t, 3, entries[2].Rank)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, RankLeaderboard(nil))
	})
}

func TestWeeklyProgress(t *testing.T) {
	tests := []struct {
		solved, goal, want int
	}{
		{0, 5, 0},
		{2, 5, 40},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{9, 5, 100},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeeklyProgress(tt.solved, tt.goal), "solved=%d goal=%d", tt.solved, tt.goal)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0 hrs 0 mins", FormatMinutes(0))
	assert.Equal(t, "0 hrs 45 mins", FormatMinutes(45))
	assert.Equal(t, "2 hrs 5 mins", FormatMinutes(125))
	assert.Equal(t, "0 hrs 0 mins", FormatMinutes(-3))
}

func TestStreaks(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) string {
		return today.AddDate(0, 0, -offset).Format(time.DateOnly)
	}

	t.Run("three consecutive days ending today", func(t *testing.T) {
		current, longest := Streaks([]model.ActivityDay{
			{Date: day(2), Count: 1},
			{Date: day(1), Count: 2},
			{Date: day(0), Count: 1},
		}, today)
		assert.Equal(t, 3, current)
		assert.Equal(t, 3, longest)
	})

	t.Run("run ending yesterday is still current", func(t *testing.T) {
		current, _ := Streaks([]model.ActivityDay{
			{Date: day(2), Count: 1},
			{Date: day(1), Count: 1},
		}, today)
		assert.Equal(t, 2, current)
	})

	t.Run("gap breaks the current run but not the longest", func(t *testing.T) {
		current, longest := Streaks([]model.ActivityDay{
			{Date: day(10), Count: 1},
			{Date: day(9), Count: 1},
			{Date: day(8), Count: 1},
			{Date: day(7), Count: 1},
			{Date: day(3), Count: 1},
		}, today)
		assert.Equal(t, 0, current)
		assert.Equal(t, 4, longest)
	})

	t.Run("no activity", func(t *testing.T) {
		current, longest := Streaks(nil, today)
		assert.Zero(t, current)
		assert.Zero(t, longest)
	})
}

func TestHeatmapStart(t *testing.T) {
	today := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), HeatmapStart(today))
}
