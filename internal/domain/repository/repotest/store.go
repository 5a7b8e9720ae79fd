// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"sort"
	"sync"
	"time"

	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/domain/repository"
)

type memberKey struct{ groupID, userID string }

type progressKey struct{ userID, problemID string }

// Store is a shared in-memory database behind every fake repository.
type Store struct {
	mu  sync.Mutex
	now time.Time

	users    map[string]*model.User
	groups   map[string]*model.Group
	members  map[memberKey]time.Time
	problems map[string]*model.Problem
	progress map[progressKey]*model.Progress

	// FailProblemLink makes CreateForGroup fail after the problem insert,
	// as a broken group link would inside the real transaction.
	FailProblemLink bool
}

func NewStore(now time.Time) *Store {
	return &Store{
		now:      now,
		users:    map[string]*model.User{},
		groups:   map[string]*model.Group{},
		members:  map[memberKey]time.Time{},
		problems: map[string]*model.Problem{},
		progress: map[progressKey]*model.Progress{},
	}
}

// Now is the store's clock, used for every generated timestamp.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
}

func (s *Store) Users() repository.UserRepository { return &users{s} }
func (s *Store) Groups() repository.GroupRepository { return &groups{s} }
func (s *Store) Problems() repository.ProblemRepository { return &problems{s} }
func (s *Store) Progress() repository.ProgressRepository { return &progress{s} }
func (s *Store) Stats() repository.StatsRepository { return &stats{s} }

// ProgressRows counts stored progress rows for a user and problem.
func (s *Store) ProgressRows(userID, problemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.progress[progressKey{userID, problemID}]; ok {
		return 1
	}
	return 0
}

// ProblemCount counts stored problems, including soft-deleted ones.
func (s *Store) ProblemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.problems)
}

func (s *Store) memberCount(groupID string) int {
	n := 0
	for k := range s.members {
		if k.groupID == groupID {
			n++
		}
	}
	return n
}

func (s *Store) groupCopy(g *model.Group) model.Group {
	out := *g
	out.MemberCount = s.memberCount(g.ID)
	return out
}

// visible mirrors the SQL visibility predicate.
func (s *Store) visible(p *model.Problem, userID string) bool {
	joinedAt, ok := s.members[memberKey{p.GroupID, userID}]
	if !ok {
		return false
	}
	g := s.groups[p.GroupID]
	return (g != nil && g.AdminID == userID) || !p.CreatedAt.Before(joinedAt)
}

func timePtr(t time.Time) *time.Time { return &t }

func notFound() error { return common.ErrNotFound }

func sortGroupsNewest(gs []model.Group) {
	sort.Slice(gs, func(i, j int) bool {
		if !gs[i].CreatedAt.Equal(gs[j].CreatedAt) {
			return gs[i].CreatedAt.After(gs[j].CreatedAt)
		}
		return gs[i].ID < gs[j].ID
	})
}
