package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/queue"

	"github.com/google/uuid"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	judgeQueue     queue.JudgeQueue
	logger         *slog.Logger
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	judgeQueue queue.JudgeQueue,
	logger *slog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		judgeQueue:     judgeQueue,
		logger:         logger,
	}
}

// SubmitCode persists a PENDING submission and hands it to the judge
// queue. The caller gets the pending record back immediately and never
// waits for grading. User and problem IDs are not resolved here; a
// dangling reference surfaces inside the judging task instead.
func (s *SubmissionService) SubmitCode(ctx context.Context, userID, problemID, code, language string) (*model.Submission, error) {
	if language == "" {
		language = model.LanguageJava
	}

	sub := &model.Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProblemID:   problemID,
		Code:        code,
		Language:    language,
		Status:      model.StatusPending,
		Score:       0,
		Version:     1,
		SubmittedAt: time.Now(),
	}

	if err := s.submissionRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	if err := s.judgeQueue.Enqueue(ctx, sub.ID); err != nil {
		return nil, fmt.Errorf("failed to enqueue submission %s for judging: %w", sub.ID, err)
	}

	s.logger.Info("submission queued for judging",
		"submission_id", sub.ID, "user_id", userID, "problem_id", problemID, "language", language)
	return sub, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return s.submissionRepo.GetSubmissionByID(ctx, id)
}

func (s *SubmissionService) ListContestSubmissions(ctx context.Context, contestID string) ([]model.Submission, error) {
	return s.submissionRepo.ListSubmissionsByContest(ctx, contestID)
}

// UpdateSubmission rewrites a submission's verdict directly, bypassing
// the judging state machine. It can race with an in-flight judging
// task on the same record; the version check on save turns that race
// into common.ErrConflict instead of a silent lost update.
func (s *SubmissionService) UpdateSubmission(ctx context.Context, id string, status model.SubmissionStatus, result string, score int) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetSubmissionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Status = status
	sub.Result = result
	sub.Score = score
	if err := s.submissionRepo.UpdateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to override submission %s: %w", id, err)
	}

	s.logger.Info("submission overridden",
		"submission_id", id, "status", status, "score", score)
	return sub, nil
}
