package model

import (
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "easy"
	DifficultyMedium ProblemDifficulty = "medium"
	DifficultyHard   ProblemDifficulty = "hard"
)

func (d ProblemDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DefaultPoints is the score awarded for a problem created without explicit points.
func (d ProblemDifficulty) DefaultPoints() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return 30
	default:
		return 20
	}
}

type Problem struct {
	ID           string            `json:"id"`
	GroupID      string            `json:"group_id"`
	Title        string            `json:"title"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Examples     *string           `json:"examples"`
	Constraints  *string           `json:"constraints"`
	PlatformLink *string           `json:"platform_link"`
	Difficulty   ProblemDifficulty `json:"difficulty"`
	Points       int               `json:"points"`
	CreatedByID  string            `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    *time.Time        `json:"deleted_at"`
}

func (p *Problem) IsDeleted() bool { return p.DeletedAt != nil }

// ProblemUpdate holds optional problem fields; nil leaves a field unchanged.
type ProblemUpdate struct {
	Title        *string
	Description  *string
	Examples     *string
	Constraints  *string
	PlatformLink *string
	Difficulty   *ProblemDifficulty
	Points       *int
}
