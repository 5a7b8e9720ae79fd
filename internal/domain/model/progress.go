package model

import "time"

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Progress struct {
	UserID      string         `json:"user_id"`
	ProblemID   string         `json:"problem_id"`
	Status      ProgressStatus `json:"status"`
	TimeSpent   int            `json:"time_spent"`
	Notes       *string        `json:"notes"`
	CompletedAt *time.Time     `json:"completed_at"`
	UpdatedAt   *time.Time     `json:"updated_at"`
}

// DefaultProgress is what a user has on a problem they never touched.
func DefaultProgress(userID, problemID string) *Progress {
	return &Progress{
		UserID:    userID,
		ProblemID: problemID,
		Status:    StatusNotStarted,
	}
}

// UserProblem is a row of the "my problems" view.
type UserProblem struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Difficulty     ProblemDifficulty `json:"difficulty"`
	Points         int               `json:"points"`
	PlatformLink   *string           `json:"platform_link"`
	CreatedAt      time.Time         `json:"created_at"`
	DeletedAt      *time.Time        `json:"deleted_at"`
	GroupID        string            `json:"group_id"`
	GroupName      string            `json:"group_name"`
	GroupDeletedAt *time.Time        `json:"group_deleted_at"`
	Status         ProgressStatus    `json:"status"`
	TimeSpent      int               `json:"time_spent"`
	CompletedAt    *time.Time        `json:"completed_at"`
	Notes          *string           `json:"notes"`
}
