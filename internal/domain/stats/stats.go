// Package stats holds the pure aggregation helpers behind the dashboard and
// the group leaderboard.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"dsa_arena/internal/domain/model"
)

// RankLeaderboard orders entries by total points, then problems solved,
// then least total time, with name and id as tie breakers, and numbers
// them from 1. The slice is sorted in place and returned.
func RankLeaderboard(entries []model.LeaderboardEntry) []model.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.ProblemsSolved != b.ProblemsSolved {
			return a.ProblemsSolved > b.ProblemsSolved
		}
		if a.TotalTime != b.TotalTime {
			return a.TotalTime < b.TotalTime
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.UserID < b.UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// WeeklyProgress is solved/goal as a percentage, rounded and capped at 100.
func WeeklyProgress(solved, goal int) int {
	if goal <= 0 {
		return 0
	}
	pct := int(math.Round(float64(solved) / float64(goal) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatMinutes renders a duration in minutes as "X hrs Y mins".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d hrs %d mins", minutes/60, minutes%60)
}

// Streaks returns the current and longest runs of consecutive days with at
// least one completion. The current run ends today, or yesterday when
// nothing has been completed yet today.
func Streaks(days []model.ActivityDay, today time.Time) (current, longest int) {
	active := make(map[string]bool, len(days))
	var dates []time.Time
	for _, d := range days {
		if d.Count <= 0 {
			continue
		}
		t, err := time.Parse(time.DateOnly, d.Date)
		if err != nil || active[d.Date] {
			continue
		}
		active[d.Date] = true
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	run := 0
	for i, t := range dates {
		if i > 0 && t.Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	day := truncateDay(today)
	if !active[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	for active[day.Format(time.DateOnly)] {
		current++
		day = day.AddDate(0, 0, -1)
	}
	return current, longest
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// HeatmapStart is the start of the heatmap window: midnight UTC 365 days
// before today.
func HeatmapStart(today time.Time) time.Time {
	return truncateDay(today).AddDate(0, 0, -365)
}
