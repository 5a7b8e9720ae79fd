package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemService_CreateProblem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada, bo := env.signup(t, "ada"), env.signup(t, "bo")
	g := env.createGroup(t, ada, "Alg Club")
	env.addMember(t, ada, g, bo)

	t.Run("hard problem defaults to 30 points", func(t *testing.T) {
		p := env.createProblem(t, ada, g, "Median of Two Sorted Arrays", model.DifficultyHard)
		assert.Equal(t, 30, p.Points)
		assert.Equal(t, "median-of-two-sorted-arrays", p.Slug)
		assert.Equal(t, g.ID, p.GroupID)
	})

	t.Run("difficulty defaults to medium", func(t *testing.T) {
		p := env.createProblem(t, ada, g, "Two Sum", "")
		assert.Equal(t, model.DifficultyMedium, p.Difficulty)
		assert.Equal(t, 20, p.Points)
	})

	t.Run("explicit points win, zero means default", func(t *testing.T) {
		p, err := env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{
			Title: "Climbing Stairs", Description: "dp", Difficulty: model.DifficultyEasy, Points: intPtr(15),
		})
		require.NoError(t, err)
		assert.Equal(t, 15, p.Points)

		p, err = env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{
			Title: "Coin Change", Description: "dp", Difficulty: model.DifficultyEasy, Points: intPtr(0),
		})
		require.NoError(t, err)
		assert.Equal(t, 10, p.Points)
	})

	t.Run("long transliterated title keeps slug within column", func(t *testing.T) {
		title := strings.Repeat("中", 200)
		p, err := env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{Title: title, Description: "unicode"})
		require.NoError(t, err)
		assert.Equal(t, title, p.Title)
		assert.NotEmpty(t, p.Slug)
		assert.LessOrEqual(t, len(p.Slug), maxSlugLen)
		assert.False(t, strings.HasSuffix(p.Slug, "-"))

		updated, err := env.problems.UpdateProblem(ctx, ada.ID, p.ID, UpdateProblemRequest{Title: strPtr(strings.Repeat("Ж", 200))})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(updated.Slug), maxSlugLen)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{Title: "x"})
		assert.ErrorIs(t, err, common.ErrValidation)

		_, err = env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{Title: "x", Description: "y", Difficulty: "brutal"})
		assert.ErrorIs(t, err, common.ErrValidation)

		_, err = env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{Title: "x", Description: "y", Points: intPtr(-5)})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("members cannot create", func(t *testing.T) {
		_, err := env.problems.CreateProblem(ctx, bo.ID, g.ID, CreateProblemRequest{Title: "x", Description: "y"})
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("failed group link leaves nothing behind", func(t *testing.T) {
		before := env.store.ProblemCount()
		env.store.FailProblemLink = true
		defer func() { env.store.FailProblemLink = false }()

		_, err := env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{Title: "x", Description: "y"})
		require.ErrorIs(t, err, common.ErrTransaction)
		assert.Equal(t, http.StatusInternalServerError, common.HTTPStatusFromError(err))
		assert.Equal(t, before, env.store.ProblemCount())
	})
}

func TestProblemService_Visibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada, early, late := env.signup(t, "ada"), env.signup(t, "early"), env.signup(t, "late")
	g := env.createGroup(t, ada, "Alg Club")
	env.addMember(t, ada, g, early)

	env.store.Advance(time.Minute)
	old := env.createProblem(t, ada, g, "Old", model.DifficultyEasy)
	env.store.Advance(time.Minute)
	env.addMember(t, ada, g, late)
	env.store.Advance(time.Minute)
	fresh := env.createProblem(t, ada, g, "Fresh", model.DifficultyEasy)

	_, err := env.problems.GetProblem(ctx, late.ID, old.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	detail, err := env.problems.GetProblem(ctx, late.ID, fresh.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsAdmin)

	detail, err = env.problems.GetProblem(ctx, early.ID, old.ID)
	require.NoError(t, err)
	assert.Equal(t, g.ID, detail.GroupID)

	detail, err = env.problems.GetProblem(ctx, ada.ID, old.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsAdmin)

	list, err := env.problems.ListGroupProblems(ctx, late.ID, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].ID)

	list, err = env.problems.ListGroupProblems(ctx, early.ID, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, fresh.ID, list[0].ID, "newest first")

	outsider := env.signup(t, "outsider")
	_, err = env.problems.GetProblem(ctx, outsider.ID, fresh.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = env.problems.ListGroupProblems(ctx, outsider.ID, g.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestProblemService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada, bo := env.signup(t, "ada"), env.signup(t, "bo")
	g := env.createGroup(t, ada, "Alg Club")
	env.addMember(t, ada, g, bo)
	p := env.createProblem(t, ada, g, "Two Sum", model.DifficultyEasy)

	hard := model.DifficultyHard
	updated, err := env.problems.UpdateProblem(ctx, ada.ID, p.ID, UpdateProblemRequest{
		Title:      strPtr("Three Sum"),
		Difficulty: &hard,
	})
	require.NoError(t, err)
	assert.Equal(t, "three-sum", updated.Slug)
	assert.Equal(t, 30, updated.Points, "difficulty change resets points")

	updated, err = env.problems.UpdateProblem(ctx, ada.ID, p.ID, UpdateProblemRequest{Points: intPtr(42)})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Points)
	assert.Equal(t, model.DifficultyHard, updated.Difficulty)

	_, err = env.problems.UpdateProblem(ctx, ada.ID, p.ID, UpdateProblemRequest{Points: intPtr(0)})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.problems.UpdateProblem(ctx, bo.ID, p.ID, UpdateProblemRequest{Title: strPtr("Hijack")})
	assert.ErrorIs(t, err, common.ErrForbidden)

	assert.ErrorIs(t, env.problems.DeleteProblem(ctx, bo.ID, p.ID), common.ErrForbidden)
	require.NoError(t, env.problems.DeleteProblem(ctx, ada.ID, p.ID))

	_, err = env.problems.GetProblem(ctx, bo.ID, p.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = env.problems.UpdateProblem(ctx, ada.ID, p.ID, UpdateProblemRequest{Title: strPtr("Again")})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, env.problems.DeleteProblem(ctx, ada.ID, p.ID), common.ErrNotFound)

	list, err := env.problems.ListGroupProblems(ctx, bo.ID, g.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProblemService_DeletedGroupBlocksMutations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.signup(t, "ada")
	g := env.createGroup(t, ada, "Alg Club")
	p := env.createProblem(t, ada, g, "Two Sum", model.DifficultyEasy)
	require.NoError(t, env.groups.DeleteGroup(ctx, ada.ID, g.ID))

	_, err := env.problems.CreateProblem(ctx, ada.ID, g.ID, CreateProblemRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = env.problems.UpdateProblem(ctx, ada.ID, p.ID, UpdateProblemRequest{Title: strPtr("z")})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
