package service

import (
	"context"
	"fmt"
	"sort"

	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
)

type LeaderboardService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
}

func NewLeaderboardService(userRepo repository.UserRepository, subRepo repository.SubmissionRepository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo, submissionRepo: subRepo}
}

type problemKey struct {
	userID    string
	problemID string
}

// GetLeaderboard reduces the contest's submission history into ranked
// per-user totals. Every contest user gets an entry, zero-valued if
// they have no accepted submissions. A problem counts once per user at
// its best accepted score, however many times it was resubmitted.
// The computation is a pure read over whatever has been persisted at
// call time; a submission still PENDING or RUNNING contributes nothing.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	users, err := s.userRepo.ListUsersByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contest users: %w", err)
	}
	submissions, err := s.submissionRepo.ListSubmissionsByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contest submissions: %w", err)
	}

	entries := make(map[string]*model.LeaderboardEntry, len(users))
	for _, u := range users {
		entries[u.ID] = &model.LeaderboardEntry{Username: u.Username}
	}

	best := map[problemKey]int{}
	for _, sub := range submissions {
		if sub.Status != model.StatusAccepted {
			continue
		}
		key := problemKey{userID: sub.UserID, problemID: sub.ProblemID}
		if sub.Score > best[key] {
			best[key] = sub.Score
		}
	}

	for key, score := range best {
		entry, ok := entries[key.userID]
		if !ok {
			continue
		}
		entry.TotalScore += score
		entry.SolvedProblems++
	}

	leaderboard := make([]model.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		leaderboard = append(leaderboard, *entry)
	}
	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].TotalScore != leaderboard[j].TotalScore {
			return leaderboard[i].TotalScore > leaderboard[j].TotalScore
		}
		return leaderboard[i].Username < leaderboard[j].Username
	})
	return leaderboard, nil
}
