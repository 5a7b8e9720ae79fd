package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/platform/database"
)

type ProgressRepository interface {
	Find(ctx context.Context, userID, problemID string) (*model.Progress, error)
	// Upsert writes the row keyed on (user, problem) and returns what was stored.
	// An already-completed row keeps its completed_at when completed is written again.
	Upsert(ctx context.Context, progress *model.Progress) (*model.Progress, error)
	ListUserProblems(ctx context.Context, userID string) ([]model.UserProblem, error)
	// GroupLeaderboard returns one unranked entry per member.
	GroupLeaderboard(ctx context.Context, groupID string) ([]model.LeaderboardEntry, error)
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) Find(ctx context.Context, userID, problemID string) (*model.Progress, error) {
	p := &model.Progress{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, problem_id, status, time_spent, notes, completed_at, updated_at
		 FROM user_progress WHERE user_id = $1 AND problem_id = $2`,
		userID, problemID,
	).Scan(&p.UserID, &p.ProblemID, &p.Status, &p.TimeSpent, &p.Notes, &p.CompletedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProgressRepository.Find: %w", err)
	}
	return p, nil
}

func (r *pgProgressRepository) Upsert(ctx context.Context, in *model.Progress) (*model.Progress, error) {
	query := `
        INSERT INTO user_progress (user_id, problem_id, status, time_spent, notes, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id, problem_id) DO UPDATE SET
            status = EXCLUDED.status,
            time_spent = EXCLUDED.time_spent,
            notes = EXCLUDED.notes,
            completed_at = CASE
                WHEN EXCLUDED.status <> 'completed' THEN NULL
                WHEN user_progress.status = 'completed' THEN user_progress.completed_at
                ELSE EXCLUDED.completed_at
            END,
            updated_at = NOW()
        RETURNING user_id, problem_id, status, time_spent, notes, completed_at, updated_at`
	out := &model.Progress{}
	err := r.db.QueryRowContext(ctx, query,
		in.UserID, in.ProblemID, in.Status, in.TimeSpent, in.Notes, in.CompletedAt,
	).Scan(&out.UserID, &out.ProblemID, &out.Status, &out.TimeSpent, &out.Notes, &out.CompletedAt, &out.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, common.NotFound("problem not found")
		}
		return nil, fmt.Errorf("pgProgressRepository.Upsert: %w", err)
	}
	return out, nil
}

func (r *pgProgressRepository) ListUserProblems(ctx context.Context, userID string) ([]model.UserProblem, error) {
	query := `
        SELECT p.id, p.title, p.description, p.difficulty, p.points, p.platform_link, p.created_at, p.deleted_at,
               g.id, g.name, g.deleted_at,
               COALESCE(up.status, 'not_started'), COALESCE(up.time_spent, 0), up.completed_at, up.notes
        FROM group_members gm
        JOIN groups g ON g.id = gm.group_id
        JOIN group_problems gp ON gp.group_id = g.id
        JOIN problems p ON p.id = gp.problem_id
        LEFT JOIN user_progress up ON up.problem_id = p.id AND up.user_id = gm.user_id
        WHERE gm.user_id = $1 AND ` + visibleToMember + `
        ORDER BY CASE COALESCE(up.status, 'not_started')
                     WHEN 'in_progress' THEN 1
                     WHEN 'not_started' THEN 2
                     ELSE 3
                 END,
                 p.created_at DESC, p.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListUserProblems query: %w", err)
	}
	defer rows.Close()

	out := []model.UserProblem{}
	for rows.Next() {
		var up model.UserProblem
		if err := rows.Scan(
			&up.ID, &up.Title, &up.Description, &up.Difficulty, &up.Points, &up.PlatformLink, &up.CreatedAt, &up.DeletedAt,
			&up.GroupID, &up.GroupName, &up.GroupDeletedAt,
			&up.Status, &up.TimeSpent, &up.CompletedAt, &up.Notes,
		); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListUserProblems scan: %w", err)
		}
		out = append(out, up)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListUserProblems rows.Err: %w", err)
	}
	return out, nil
}

func (r *pgProgressRepository) GroupLeaderboard(ctx context.Context, groupID string) ([]model.LeaderboardEntry, error) {
	query := `
        SELECT u.id, u.name, (g.admin_id = u.id) AS is_admin,
               COUNT(s.problem_id), COALESCE(SUM(s.points), 0), COALESCE(SUM(s.time_spent), 0),
               COALESCE(AVG(s.time_spent), 0)::float8
        FROM group_members gm
        JOIN groups g ON g.id = gm.group_id
        JOIN users u ON u.id = gm.user_id
        LEFT JOIN (
            SELECT up.user_id, up.problem_id, up.time_spent, p.points, p.created_at
            FROM user_progress up
            JOIN group_problems gp ON gp.problem_id = up.problem_id AND gp.group_id = $1
            JOIN problems p ON p.id = up.problem_id
            WHERE up.status = 'completed'
        ) s ON s.user_id = gm.user_id AND (s.created_at >= gm.joined_at OR g.admin_id = gm.user_id)
        WHERE gm.group_id = $1
        GROUP BY u.id, u.name, g.admin_id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.GroupLeaderboard query: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.IsAdmin, &e.ProblemsSolved, &e.TotalPoints, &e.TotalTime, &e.AvgTime); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.GroupLeaderboard scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.GroupLeaderboard rows.Err: %w", err)
	}
	return entries, nil
}
