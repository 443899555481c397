package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

// Store is an in-memory implementation of the repository interfaces,
// used by tests and local runs without PostgreSQL. All methods copy
// records on the way in and out so callers never share memory with
// the store.
type Store struct {
	mu          sync.RWMutex
	contests    map[string]model.Contest
	problems    map[string]model.Problem
	users       map[string]model.User
	submissions map[string]model.Submission
}

func NewStore() *Store {
	return &Store{
		contests:    map[string]model.Contest{},
		problems:    map[string]model.Problem{},
		users:       map[string]model.User{},
		submissions: map[string]model.Submission{},
	}
}

func (s *Store) CreateContest(ctx context.Context, c *model.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contests[c.ID] = *c
	return nil
}

func (s *Store) FindContestByID(ctx context.Context, id string) (*model.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contests[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateProblem(ctx context.Context, p *model.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.problems[p.ID] = *p
	return nil
}

func (s *Store) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.problems[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListProblemsByContest(ctx context.Context, contestID string) ([]model.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	problems := []model.Problem{}
	for _, p := range s.problems {
		if p.ContestID == contestID {
			problems = append(problems, p)
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Title < problems[j].Title })
	return problems, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username && existing.ContestID == u.ContestID {
			return fmt.Errorf("user %q already joined contest %s: %w", u.Username, u.ContestID, common.ErrConflict)
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByUsernameAndContest(ctx context.Context, username, contestID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username && u.ContestID == contestID {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *Store) ListUsersByContest(ctx context.Context, contestID string) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := []model.User{}
	for _, u := range s.users {
		if u.ContestID == contestID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *Store) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = *sub
	return nil
}

func (s *Store) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &sub, nil
}

func (s *Store) UpdateSubmission(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.submissions[sub.ID]
	if !ok {
		return common.ErrNotFound
	}
	if stored.Version != sub.Version {
		return fmt.Errorf("submission %s was modified concurrently: %w", sub.ID, common.ErrConflict)
	}
	sub.Version++
	sub.UpdatedAt = time.Now()
	s.submissions[sub.ID] = *sub
	return nil
}

func (s *Store) ListSubmissionsByContest(ctx context.Context, contestID string) ([]model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submissions := []model.Submission{}
	for _, sub := range s.submissions {
		u, ok := s.users[sub.UserID]
		if !ok || u.ContestID != contestID {
			continue
		}
		submissions = append(submissions, sub)
	}
	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].SubmittedAt.Before(submissions[j].SubmittedAt)
	})
	return submissions, nil
}
