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

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, patch model.ProfileUpdate) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, bio, avatar_url, weekly_goal,
	github_username, linkedin_url, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Bio, &user.AvatarURL, &user.WeeklyGoal,
		&user.GithubUsername, &user.LinkedinURL, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, weekly_goal)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.HashedPassword, user.WeeklyGoal).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return common.Conflict("user with this email already exists")
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of patch and returns the stored row.
func (r *pgUserRepository) UpdateProfile(ctx context.Context, id string, patch model.ProfileUpdate) (*model.User, error) {
	query := `UPDATE users SET
	              name = COALESCE($1, name),
	              bio = COALESCE($2, bio),
	              avatar_url = COALESCE($3, avatar_url),
	              weekly_goal = COALESCE($4, weekly_goal),
	              github_username = COALESCE($5, github_username),
	              linkedin_url = COALESCE($6, linkedin_url),
	              updated_at = NOW()
	          WHERE id = $7
	          RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query,
		patch.Name, patch.Bio, patch.AvatarURL, patch.WeeklyGoal, patch.GithubUsername, patch.LinkedinURL, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}
