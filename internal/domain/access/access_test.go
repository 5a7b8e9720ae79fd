package access_test

import (
	"context"
	"testing"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanViewProblem(t *testing.T) {
	joined := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, access.CanViewProblem(joined, joined, false), "created at join time")
	assert.True(t, access.CanViewProblem(joined, joined.Add(time.Minute), false))
	assert.False(t, access.CanViewProblem(joined, joined.Add(-time.Minute), false))
	assert.True(t, access.CanViewProblem(joined, joined.Add(-24*time.Hour), true), "admin sees older problems")
}

func TestChecker(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewStore(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	users, groups := store.Users(), store.Groups()

	require.NoError(t, users.Create(ctx, &model.User{ID: "admin", Name: "Ada", Email: "ada@example.com"}))
	require.NoError(t, users.Create(ctx, &model.User{ID: "member", Name: "Bo", Email: "bo@example.com"}))
	require.NoError(t, users.Create(ctx, &model.User{ID: "outsider", Name: "Cy", Email: "cy@example.com"}))
	require.NoError(t, groups.CreateWithAdmin(ctx, &model.Group{ID: "g1", Name: "Alg Club", AdminID: "admin"}))
	_, err := groups.AddMember(ctx, "g1", "member")
	require.NoError(t, err)

	checker := access.NewChecker(groups)

	t.Run("member passes", func(t *testing.T) {
		ga, err := checker.RequireMember(ctx, "g1", "member")
		require.NoError(t, err)
		assert.False(t, ga.IsAdmin())
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		_, err := checker.RequireMember(ctx, "g1", "outsider")
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("missing group", func(t *testing.T) {
		_, err := checker.RequireMember(ctx, "nope", "member")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("admin check", func(t *testing.T) {
		_, err := checker.RequireAdmin(ctx, "g1", "admin")
		require.NoError(t, err)
		_, err = checker.RequireAdmin(ctx, "g1", "member")
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("deleted group blocks admin mutations but not membership reads", func(t *testing.T) {
		require.NoError(t, groups.SoftDelete(ctx, "g1"))
		_, err := checker.RequireAdmin(ctx, "g1", "admin")
		assert.ErrorIs(t, err, common.ErrNotFound)

		ga, err := checker.RequireMember(ctx, "g1", "member")
		require.NoError(t, err)
		assert.True(t, ga.Group.IsDeleted())
	})
}
