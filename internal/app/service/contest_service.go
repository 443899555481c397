package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"

	"github.com/google/uuid"
)

type ContestService struct {
	contestRepo repository.ContestRepository
	problemRepo repository.ProblemRepository
	userRepo    repository.UserRepository
}

func NewContestService(
	contestRepo repository.ContestRepository,
	problemRepo repository.ProblemRepository,
	userRepo repository.UserRepository,
) *ContestService {
	return &ContestService{contestRepo: contestRepo, problemRepo: problemRepo, userRepo: userRepo}
}

func (s *ContestService) GetContest(ctx context.Context, contestID string) (*model.Contest, error) {
	contest, err := s.contestRepo.FindContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	problems, err := s.problemRepo.ListProblemsByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contest problems: %w", err)
	}
	contest.Problems = problems
	return contest, nil
}

// JoinContest registers username in the contest, or returns the
// existing registration if the name already joined.
func (s *ContestService) JoinContest(ctx context.Context, username, contestID string) (*model.User, error) {
	if _, err := s.contestRepo.FindContestByID(ctx, contestID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByUsernameAndContest(ctx, username, contestID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	user = &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		ContestID: contestID,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}
