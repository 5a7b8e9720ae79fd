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

type ProblemRepository interface {
	// CreateForGroup writes the problem and its group link in one transaction.
	CreateForGroup(ctx context.Context, problem *model.Problem) error
	// FindByID returns the problem even when it is soft-deleted.
	FindByID(ctx context.Context, id string) (*model.Problem, error)
	// ListVisible returns the group's live problems that userID may see, newest first.
	ListVisible(ctx context.Context, groupID, userID string) ([]model.Problem, error)
	Update(ctx context.Context, problem *model.Problem) error
	SoftDelete(ctx context.Context, id string) error
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

// visibleToMember is the SQL form of access.CanViewProblem for a row set
// joining problems p, groups g and the viewer's membership gm.
const visibleToMember = `(p.created_at >= gm.joined_at OR g.admin_id = gm.user_id)`

const problemSelect = `
	SELECT p.id, gp.group_id, p.title, p.slug, p.description, p.examples, p.constraints, p.platform_link,
	       p.difficulty, p.points, p.created_by, p.created_at, p.updated_at, p.deleted_at
	FROM problems p
	JOIN group_problems gp ON gp.problem_id = p.id`

func scanProblem(row interface{ Scan(...any) error }) (*model.Problem, error) {
	p := &model.Problem{}
	err := row.Scan(
		&p.ID, &p.GroupID, &p.Title, &p.Slug, &p.Description, &p.Examples, &p.Constraints, &p.PlatformLink,
		&p.Difficulty, &p.Points, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	return p, err
}

func (r *pgProblemRepository) CreateForGroup(ctx context.Context, p *model.Problem) error {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO problems (id, title, slug, description, examples, constraints, platform_link, difficulty, points, created_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 RETURNING created_at, updated_at`,
			p.ID, p.Title, p.Slug, p.Description, p.Examples, p.Constraints, p.PlatformLink, p.Difficulty, p.Points, p.CreatedByID,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert problem: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_problems (group_id, problem_id) VALUES ($1, $2)`, p.GroupID, p.ID,
		); err != nil {
			return fmt.Errorf("link problem to group: %w", err)
		}
		return nil
	})
	if err != nil {
		return common.TransactionFailed("pgProblemRepository.CreateForGroup", err)
	}
	return nil
}

func (r *pgProblemRepository) FindByID(ctx context.Context, id string) (*model.Problem, error) {
	p, err := scanProblem(r.db.QueryRowContext(ctx, problemSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProblemRepository) ListVisible(ctx context.Context, groupID, userID string) ([]model.Problem, error) {
	query := problemSelect + `
	JOIN groups g ON g.id = gp.group_id
	JOIN group_members gm ON gm.group_id = gp.group_id AND gm.user_id = $2
	WHERE gp.group_id = $1 AND p.deleted_at IS NULL AND ` + visibleToMember + `
	ORDER BY p.created_at DESC, p.id`
	rows, err := r.db.QueryContext(ctx, query, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListVisible query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListVisible scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListVisible rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) Update(ctx context.Context, p *model.Problem) error {
	query := `UPDATE problems SET
                title = $1, slug = $2, description = $3, examples = $4, constraints = $5,
                platform_link = $6, difficulty = $7, points = $8, updated_at = NOW()
              WHERE id = $9 AND deleted_at IS NULL
              RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Description, p.Examples, p.Constraints, p.PlatformLink, p.Difficulty, p.Points, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgProblemRepository.Update: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE problems SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.SoftDelete: %w", err)
	}
	return requireAffected(res, "pgProblemRepository.SoftDelete")
}
