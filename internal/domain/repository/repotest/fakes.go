package repotest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
)

type users struct{ s *Store }

func (r *users) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return common.Conflict("user with this email already exists")
		}
	}
	u.CreatedAt, u.UpdatedAt = r.s.now, r.s.now
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound()
}

func (r *users) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound()
	}
	cp := *u
	return &cp, nil
}

func (r *users) UpdateProfile(_ context.Context, id string, patch model.ProfileUpdate) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound()
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Bio != nil {
		u.Bio = patch.Bio
	}
	if patch.AvatarURL != nil {
		u.AvatarURL = patch.AvatarURL
	}
	if patch.WeeklyGoal != nil {
		u.WeeklyGoal = *patch.WeeklyGoal
	}
	if patch.GithubUsername != nil {
		u.GithubUsername = patch.GithubUsername
	}
	if patch.LinkedinURL != nil {
		u.LinkedinURL = patch.LinkedinURL
	}
	u.UpdatedAt = r.s.now
	cp := *u
	return &cp, nil
}

type groups struct{ s *Store }

func (r *groups) CreateWithAdmin(_ context.Context, g *model.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[g.AdminID]; !ok {
		return common.TransactionFailed("groups.CreateWithAdmin", errors.New("admin does not exist"))
	}
	g.CreatedAt, g.UpdatedAt = r.s.now, r.s.now
	g.MemberCount = 1
	cp := *g
	r.s.groups[g.ID] = &cp
	r.s.members[memberKey{g.ID, g.AdminID}] = r.s.now
	return nil
}

func (r *groups) ListForUser(_ context.Context, userID string) ([]model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Group{}
	for _, g := range r.s.groups {
		if g.IsDeleted() {
			continue
		}
		if _, ok := r.s.members[memberKey{g.ID, userID}]; ok {
			out = append(out, r.s.groupCopy(g))
		}
	}
	sortGroupsNewest(out)
	return out, nil
}

func (r *groups) FindByID(_ context.Context, id string) (*model.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, notFound()
	}
	cp := r.s.groupCopy(g)
	return &cp, nil
}

func (r *groups) SoftDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.groups[id]
	if !ok || g.IsDeleted() {
		return notFound()
	}
	g.DeletedAt = timePtr(r.s.now)
	g.UpdatedAt = r.s.now
	return nil
}

func (r *groups) FindMembership(_ context.Context, groupID, userID string) (*model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	joined, ok := r.s.members[memberKey{groupID, userID}]
	if !ok {
		return nil, notFound()
	}
	return &model.Membership{GroupID: groupID, UserID: userID, JoinedAt: joined}, nil
}

func (r *groups) ListMembers(_ context.Context, groupID string) ([]model.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g := r.s.groups[groupID]
	out := []model.Member{}
	for k, joined := range r.s.members {
		if k.groupID != groupID {
			continue
		}
		u := r.s.users[k.userID]
		out = append(out, model.Member{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			JoinedAt: joined,
			IsAdmin:  g != nil && g.AdminID == u.ID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsAdmin != out[j].IsAdmin {
			return out[i].IsAdmin
		}
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *groups) AddMember(_ context.Context, groupID, userID string) (*model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := memberKey{groupID, userID}
	if _, ok := r.s.members[k]; ok {
		return nil, common.Validation("user is already a member of this group")
	}
	r.s.members[k] = r.s.now
	return &model.Membership{GroupID: groupID, UserID: userID, JoinedAt: r.s.now}, nil
}

func (r *groups) RemoveMember(_ context.Context, groupID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := memberKey{groupID, userID}
	if _, ok := r.s.members[k]; !ok {
		return notFound()
	}
	delete(r.s.members, k)
	return nil
}

type problems struct{ s *Store }

func (r *problems) CreateForGroup(_ context.Context, p *model.Problem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailProblemLink {
		return common.TransactionFailed("problems.CreateForGroup", errors.New("link problem to group: injected failure"))
	}
	if _, ok := r.s.groups[p.GroupID]; !ok {
		return common.TransactionFailed("problems.CreateForGroup", errors.New("group does not exist"))
	}
	p.CreatedAt, p.UpdatedAt = r.s.now, r.s.now
	cp := *p
	r.s.problems[p.ID] = &cp
	return nil
}

func (r *problems) FindByID(_ context.Context, id string) (*model.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.problems[id]
	if !ok {
		return nil, notFound()
	}
	cp := *p
	return &cp, nil
}

func (r *problems) ListVisible(_ context.Context, groupID, userID string) ([]model.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Problem{}
	for _, p := range r.s.problems {
		if p.GroupID != groupID || p.IsDeleted() || !r.s.visible(p, userID) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *problems) Update(_ context.Context, p *model.Problem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.problems[p.ID]
	if !ok || existing.IsDeleted() {
		return notFound()
	}
	p.UpdatedAt = r.s.now
	cp := *p
	cp.CreatedAt, cp.GroupID, cp.CreatedByID = existing.CreatedAt, existing.GroupID, existing.CreatedByID
	r.s.problems[p.ID] = &cp
	return nil
}

func (r *problems) SoftDelete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.problems[id]
	if !ok || p.IsDeleted() {
		return notFound()
	}
	p.DeletedAt = timePtr(r.s.now)
	return nil
}

type progress struct{ s *Store }

func (r *progress) Find(_ context.Context, userID, problemID string) (*model.Progress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.progress[progressKey{userID, problemID}]
	if !ok {
		return nil, notFound()
	}
	cp := *p
	return &cp, nil
}

func (r *progress) Upsert(_ context.Context, in *model.Progress) (*model.Progress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := progressKey{in.UserID, in.ProblemID}
	row := *in
	if existing, ok := r.s.progress[k]; ok {
		switch {
		case in.Status != model.StatusCompleted:
			row.CompletedAt = nil
		case existing.Status == model.StatusCompleted:
			row.CompletedAt = existing.CompletedAt
		}
	}
	row.UpdatedAt = timePtr(r.s.now)
	r.s.progress[k] = &row
	out := row
	return &out, nil
}

func (r *progress) ListUserProblems(_ context.Context, userID string) ([]model.UserProblem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.UserProblem{}
	for _, p := range r.s.problems {
		if !r.s.visible(p, userID) {
			continue
		}
		g := r.s.groups[p.GroupID]
		up := model.UserProblem{
			ID:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			Difficulty:     p.Difficulty,
			Points:         p.Points,
			PlatformLink:   p.PlatformLink,
			CreatedAt:      p.CreatedAt,
			DeletedAt:      p.DeletedAt,
			GroupID:        g.ID,
			GroupName:      g.Name,
			GroupDeletedAt: g.DeletedAt,
			Status:         model.StatusNotStarted,
		}
		if row, ok := r.s.progress[progressKey{userID, p.ID}]; ok {
			up.Status, up.TimeSpent, up.CompletedAt, up.Notes = row.Status, row.TimeSpent, row.CompletedAt, row.Notes
		}
		out = append(out, up)
	}
	rank := func(s model.ProgressStatus) int {
		switch s {
		case model.StatusInProgress:
			return 1
		case model.StatusNotStarted:
			return 2
		}
		return 3
	}
	sort.Slice(out, func(i, j int) bool {
		if ri, rj := rank(out[i].Status), rank(out[j].Status); ri != rj {
			return ri < rj
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *progress) GroupLeaderboard(_ context.Context, groupID string) ([]model.LeaderboardEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g := r.s.groups[groupID]
	out := []model.LeaderboardEntry{}
	for k := range r.s.members {
		if k.groupID != groupID {
			continue
		}
		u := r.s.users[k.userID]
		e := model.LeaderboardEntry{UserID: u.ID, Name: u.Name, IsAdmin: g != nil && g.AdminID == u.ID}
		for _, p := range r.s.problems {
			if p.GroupID != groupID || !r.s.visible(p, u.ID) {
				continue
			}
			row, ok := r.s.progress[progressKey{u.ID, p.ID}]
			if !ok || row.Status != model.StatusCompleted {
				continue
			}
			e.ProblemsSolved++
			e.TotalPoints += p.Points
			e.TotalTime += row.TimeSpent
		}
		if e.ProblemsSolved > 0 {
			e.AvgTime = float64(e.TotalTime) / float64(e.ProblemsSolved)
		}
		out = append(out, e)
	}
	return out, nil
}

type stats struct{ s *Store }

func (r *stats) CompletionTotals(_ context.Context, userID string, weekStart time.Time) (*model.CompletionTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := &model.CompletionTotals{}
	for k, row := range r.s.progress {
		if k.userID != userID {
			continue
		}
		switch row.Status {
		case model.StatusInProgress:
			t.InProgress++
		case model.StatusCompleted:
			t.ProblemsSolved++
			t.TotalMinutes += row.TimeSpent
			if p, ok := r.s.problems[k.problemID]; ok {
				t.Points += p.Points
			}
			if row.CompletedAt != nil && !row.CompletedAt.Before(weekStart) {
				t.WeeklySolved++
			}
		}
	}
	return t, nil
}

func (r *stats) RecentCompletions(_ context.Context, userID string, limit int) ([]model.RecentActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.RecentActivity{}
	for k, row := range r.s.progress {
		if k.userID != userID || row.Status != model.StatusCompleted {
			continue
		}
		p := r.s.problems[k.problemID]
		a := model.RecentActivity{ID: p.ID, Title: p.Title, CompletedAt: *row.CompletedAt, TimeSpent: row.TimeSpent}
		if g, ok := r.s.groups[p.GroupID]; ok {
			a.GroupName = g.Name
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.After(out[j].CompletedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stats) ActivityHeatmap(_ context.Context, userID string, since time.Time) ([]model.ActivityDay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int{}
	for k, row := range r.s.progress {
		if k.userID != userID || row.Status != model.StatusCompleted || row.CompletedAt.Before(since) {
			continue
		}
		counts[row.CompletedAt.UTC().Format(time.DateOnly)]++
	}
	out := make([]model.ActivityDay, 0, len(counts))
	for day, n := range counts {
		out = append(out, model.ActivityDay{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
