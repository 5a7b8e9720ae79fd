package service

import (
	"context"
	"testing"

	"dsa_arena/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Signup(ctx, SignupRequest{Name: "  Ada  ", Email: " Ada@Example.COM ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, 5, resp.User.WeeklyGoal)
	assert.NotEmpty(t, resp.Token)

	token, err := jwtauth.VerifyToken(env.auth.tokens.Auth, resp.Token)
	require.NoError(t, err)
	claims, err := token.AsMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims["user_id"])

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		_, err := env.auth.Signup(ctx, SignupRequest{Name: "Other", Email: "ADA@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := env.auth.Signup(ctx, SignupRequest{Name: "Bo", Email: "bo@example.com", Password: "123"})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := env.auth.Signup(ctx, SignupRequest{Name: "   ", Email: "bo@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.signup(t, "ada")

	resp, err := env.auth.Login(ctx, LoginRequest{Email: "ADA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup(t, "ada")

	me, err := env.auth.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)

	_, err = env.auth.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.signup(t, "ada")

	updated, err := env.users.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
		Bio:        strPtr("loves graphs"),
		WeeklyGoal: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", updated.Name, "unset fields are kept")
	assert.Equal(t, 10, updated.WeeklyGoal)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "loves graphs", *updated.Bio)

	_, err = env.users.UpdateProfile(ctx, user.ID, UpdateProfileRequest{WeeklyGoal: intPtr(101)})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.users.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.users.UpdateProfile(ctx, user.ID, UpdateProfileRequest{LinkedinURL: strPtr("not a url")})
	assert.ErrorIs(t, err, common.ErrValidation)

	profile, err := env.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, profile.WeeklyGoal)
}
