package model

import "time"

// CompletionTotals are the counters the dashboard derives from user_progress.
type CompletionTotals struct {
	ProblemsSolved int
	TotalMinutes   int
	Points         int
	InProgress     int
	WeeklySolved   int
}

type RecentActivity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completed_at"`
	TimeSpent   int       `json:"time_spent"`
	GroupName   string    `json:"group_name"`
}

// ActivityDay is one heatmap cell: completions on a calendar date.
type ActivityDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type DashboardUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type DashboardStats struct {
	Points         int    `json:"points"`
	ProblemsSolved int    `json:"problemsSolved"`
	TimeSpent      string `json:"timeSpent"`
	TotalMinutes   int    `json:"totalMinutes"`
	InProgress     int    `json:"inProgress"`
	WeeklyGoal     int    `json:"weeklyGoal"`
	WeeklySolved   int    `json:"weeklySolved"`
	WeeklyProgress int    `json:"weeklyProgress"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
}

type Dashboard struct {
	User           DashboardUser    `json:"user"`
	Stats          DashboardStats   `json:"stats"`
	RecentActivity []RecentActivity `json:"recentActivity"`
	Heatmap        []ActivityDay    `json:"heatmap"`
}
