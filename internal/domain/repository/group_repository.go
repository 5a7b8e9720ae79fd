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

type GroupRepository interface {
	// CreateWithAdmin inserts the group and the admin's membership atomically.
	CreateWithAdmin(ctx context.Context, group *model.Group) error
	ListForUser(ctx context.Context, userID string) ([]model.Group, error)
	// FindByID returns the group even when it is soft-deleted.
	FindByID(ctx context.Context, id string) (*model.Group, error)
	SoftDelete(ctx context.Context, id string) error

	FindMembership(ctx context.Context, groupID, userID string) (*model.Membership, error)
	ListMembers(ctx context.Context, groupID string) ([]model.Member, error)
	AddMember(ctx context.Context, groupID, userID string) (*model.Membership, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
}

type pgGroupRepository struct {
	db *sql.DB
}

func NewPgGroupRepository(db *sql.DB) GroupRepository {
	return &pgGroupRepository{db: db}
}

func (r *pgGroupRepository) CreateWithAdmin(ctx context.Context, g *model.Group) error {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO groups (id, name, description, admin_id)
			 VALUES ($1, $2, $3, $4)
			 RETURNING created_at, updated_at`,
			g.ID, g.Name, g.Description, g.AdminID,
		).Scan(&g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert group: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3)`,
			g.ID, g.AdminID, g.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert admin membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return common.TransactionFailed("pgGroupRepository.CreateWithAdmin", err)
	}
	g.MemberCount = 1
	return nil
}

const groupSelect = `
	SELECT g.id, g.name, g.description, g.admin_id, g.created_at, g.updated_at, g.deleted_at,
	       (SELECT COUNT(*) FROM group_members c WHERE c.group_id = g.id) AS member_count
	FROM groups g`

func scanGroup(row interface{ Scan(...any) error }) (*model.Group, error) {
	g := &model.Group{}
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.AdminID, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt, &g.MemberCount)
	return g, err
}

func (r *pgGroupRepository) ListForUser(ctx context.Context, userID string) ([]model.Group, error) {
	query := groupSelect + `
	JOIN group_members gm ON gm.group_id = g.id
	WHERE gm.user_id = $1 AND g.deleted_at IS NULL
	ORDER BY g.created_at DESC, g.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgGroupRepository.ListForUser query: %w", err)
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("pgGroupRepository.ListForUser scan: %w", err)
		}
		groups = append(groups, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgGroupRepository.ListForUser rows.Err: %w", err)
	}
	return groups, nil
}

func (r *pgGroupRepository) FindByID(ctx context.Context, id string) (*model.Group, error) {
	g, err := scanGroup(r.db.QueryRowContext(ctx, groupSelect+` WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgGroupRepository.FindByID: %w", err)
	}
	return g, nil
}

func (r *pgGroupRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE groups SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("pgGroupRepository.SoftDelete: %w", err)
	}
	return requireAffected(res, "pgGroupRepository.SoftDelete")
}

func (r *pgGroupRepository) FindMembership(ctx context.Context, groupID, userID string) (*model.Membership, error) {
	m := &model.Membership{}
	err := r.db.QueryRowContext(ctx,
		`SELECT group_id, user_id, joined_at FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	).Scan(&m.GroupID, &m.UserID, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgGroupRepository.FindMembership: %w", err)
	}
	return m, nil
}

func (r *pgGroupRepository) ListMembers(ctx context.Context, groupID string) ([]model.Member, error) {
	query := `
        SELECT u.id, u.name, u.email, gm.joined_at, (g.admin_id = u.id) AS is_admin
        FROM group_members gm
        JOIN users u ON u.id = gm.user_id
        JOIN groups g ON g.id = gm.group_id
        WHERE gm.group_id = $1
        ORDER BY is_admin DESC, gm.joined_at ASC, u.id`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("pgGroupRepository.ListMembers query: %w", err)
	}
	defer rows.Close()

	members := []model.Member{}
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.JoinedAt, &m.IsAdmin); err != nil {
			return nil, fmt.Errorf("pgGroupRepository.ListMembers scan: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgGroupRepository.ListMembers rows.Err: %w", err)
	}
	return members, nil
}

func (r *pgGroupRepository) AddMember(ctx context.Context, groupID, userID string) (*model.Membership, error) {
	m := &model.Membership{GroupID: groupID, UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) RETURNING joined_at`,
		groupID, userID,
	).Scan(&m.JoinedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, common.Validation("user is already a member of this group")
		}
		if database.IsForeignKeyViolation(err) {
			return nil, common.NotFound("group or user not found")
		}
		return nil, fmt.Errorf("pgGroupRepository.AddMember: %w", err)
	}
	return m, nil
}

func (r *pgGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("pgGroupRepository.RemoveMember: %w", err)
	}
	return requireAffected(res, "pgGroupRepository.RemoveMember")
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
