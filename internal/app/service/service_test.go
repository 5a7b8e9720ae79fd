package service

import (
	"context"
	"testing"
	"time"

	"dsa_arena/internal/common/security"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository/repotest"
	"dsa_arena/internal/platform/logger"
	"dsa_arena/internal/platform/metrics"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store     *repotest.Store
	auth      *AuthService
	users     *UserService
	groups    *GroupService
	members   *MemberService
	problems  *ProblemService
	progress  *ProgressService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repotest.NewStore(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	log := logger.Nop()
	checker := access.NewChecker(store.Groups())

	env := &testEnv{
		store:     store,
		auth:      NewAuthService(store.Users(), security.NewTokenIssuer([]byte("test-secret"), time.Hour), log),
		users:     NewUserService(store.Users()),
		groups:    NewGroupService(store.Groups(), checker, log),
		members:   NewMemberService(store.Groups(), store.Users(), checker, log),
		problems:  NewProblemService(store.Problems(), checker, log),
		progress:  NewProgressService(store.Problems(), store.Progress(), checker, metrics.New()),
		dashboard: NewDashboardService(store.Users(), store.Stats()),
	}
	env.progress.now = store.Now
	env.dashboard.now = store.Now
	return env
}

func (e *testEnv) signup(t *testing.T, name string) *model.User {
	t.Helper()
	resp, err := e.auth.Signup(context.Background(), SignupRequest{
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp.User
}

func (e *testEnv) createGroup(t *testing.T, admin *model.User, name string) *model.Group {
	t.Helper()
	g, err := e.groups.CreateGroup(context.Background(), admin.ID, CreateGroupRequest{Name: name})
	require.NoError(t, err)
	return g
}

func (e *testEnv) addMember(t *testing.T, admin *model.User, g *model.Group, u *model.User) {
	t.Helper()
	_, err := e.members.AddMember(context.Background(), admin.ID, g.ID, AddMemberRequest{Email: u.Email})
	require.NoError(t, err)
}

func (e *testEnv) createProblem(t *testing.T, admin *model.User, g *model.Group, title string, d model.ProblemDifficulty) *model.Problem {
	t.Helper()
	p, err := e.problems.CreateProblem(context.Background(), admin.ID, g.ID, CreateProblemRequest{
		Title:       title,
		Description: "solve it",
		Difficulty:  d,
	})
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
