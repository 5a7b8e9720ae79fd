package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dsa_arena/internal/domain/model"
)

// StatsRepository reads the per-user aggregates behind the dashboard.
type StatsRepository interface {
	CompletionTotals(ctx context.Context, userID string, weekStart time.Time) (*model.CompletionTotals, error)
	RecentCompletions(ctx context.Context, userID string, limit int) ([]model.RecentActivity, error)
	// ActivityHeatmap counts completions per UTC date since the given instant, oldest first.
	ActivityHeatmap(ctx context.Context, userID string, since time.Time) ([]model.ActivityDay, error)
}

type pgStatsRepository struct {
	db *sql.DB
}

func NewPgStatsRepository(db *sql.DB) StatsRepository {
	return &pgStatsRepository{db: db}
}

func (r *pgStatsRepository) CompletionTotals(ctx context.Context, userID string, weekStart time.Time) (*model.CompletionTotals, error) {
	query := `
        SELECT COUNT(*) FILTER (WHERE up.status = 'completed'),
               COALESCE(SUM(up.time_spent) FILTER (WHERE up.status = 'completed'), 0),
               COALESCE(SUM(p.points) FILTER (WHERE up.status = 'completed'), 0),
               COUNT(*) FILTER (WHERE up.status = 'in_progress'),
               COUNT(*) FILTER (WHERE up.status = 'completed' AND up.completed_at >= $2)
        FROM user_progress up
        JOIN problems p ON p.id = up.problem_id
        WHERE up.user_id = $1`
	t := &model.CompletionTotals{}
	err := r.db.QueryRowContext(ctx, query, userID, weekStart).
		Scan(&t.ProblemsSolved, &t.TotalMinutes, &t.Points, &t.InProgress, &t.WeeklySolved)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.CompletionTotals: %w", err)
	}
	return t, nil
}

func (r *pgStatsRepository) RecentCompletions(ctx context.Context, userID string, limit int) ([]model.RecentActivity, error) {
	query := `
        SELECT p.id, p.title, up.completed_at, up.time_spent, COALESCE(MIN(g.name), '')
        FROM user_progress up
        JOIN problems p ON p.id = up.problem_id
        LEFT JOIN group_problems gp ON gp.problem_id = p.id
        LEFT JOIN groups g ON g.id = gp.group_id
        WHERE up.user_id = $1 AND up.status = 'completed'
        GROUP BY p.id, p.title, up.completed_at, up.time_spent
        ORDER BY up.completed_at DESC, p.id
        LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.RecentCompletions query: %w", err)
	}
	defer rows.Close()

	out := []model.RecentActivity{}
	for rows.Next() {
		var a model.RecentActivity
		if err := rows.Scan(&a.ID, &a.Title, &a.CompletedAt, &a.TimeSpent, &a.GroupName); err != nil {
			return nil, fmt.Errorf("pgStatsRepository.RecentCompletions scan: %w", err)
		}
		out = append(out, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.RecentCompletions rows.Err: %w", err)
	}
	return out, nil
}

func (r *pgStatsRepository) ActivityHeatmap(ctx context.Context, userID string, since time.Time) ([]model.ActivityDay, error) {
	query := `
        SELECT to_char(completed_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
        FROM user_progress
        WHERE user_id = $1 AND status = 'completed' AND completed_at >= $2
        GROUP BY day
        ORDER BY day`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.ActivityHeatmap query: %w", err)
	}
	defer rows.Close()

	days := []model.ActivityDay{}
	for rows.Next() {
		var d model.ActivityDay
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("pgStatsRepository.ActivityHeatmap scan: %w", err)
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.ActivityHeatmap rows.Err: %w", err)
	}
	return days, nil
}
