package worker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codearena/internal/app/judge"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/queue"
)

const (
	resultAccepted    = "All test cases passed!"
	resultWrongAnswer = "Expected output doesn't match. Check your logic."
)

type Config struct {
	// CompileDelay and ExecuteDelay simulate the compile and execute
	// phases of a real judge.
	CompileDelay time.Duration
	ExecuteDelay time.Duration
	// MaxConcurrent bounds the number of submissions judged at once;
	// zero or negative means unlimited.
	MaxConcurrent int
}

// JudgeWorker drains the judge queue and drives each submission through
// PENDING -> RUNNING -> {ACCEPTED, WRONG_ANSWER}. A submission or
// problem that disappears mid-flight aborts that task with a logged
// event and no retry; the record keeps whatever state was last saved.
type JudgeWorker struct {
	queue          queue.JudgeQueue
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	grader         *judge.Grader
	cfg            Config
	logger         *slog.Logger
	wg             sync.WaitGroup
	sem            chan struct{}
}

func New(
	q queue.JudgeQueue,
	subRepo repository.SubmissionRepository,
	probRepo repository.ProblemRepository,
	grader *judge.Grader,
	cfg Config,
	logger *slog.Logger,
) *JudgeWorker {
	w := &JudgeWorker{
		queue:          q,
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		grader:         grader,
		cfg:            cfg,
		logger:         logger,
	}
	if cfg.MaxConcurrent > 0 {
		w.sem = make(chan struct{}, cfg.MaxConcurrent)
	}
	return w
}

// Start consumes the queue until ctx is cancelled, judging each
// submission in its own goroutine. It returns after in-flight tasks
// have drained.
func (w *JudgeWorker) Start(ctx context.Context) {
	w.logger.Info("judge worker started", "max_concurrent", w.cfg.MaxConcurrent)
	for {
		id, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.logger.Info("judge worker stopping")
				w.wg.Wait()
				return
			}
			w.logger.Error("failed to dequeue submission", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if id == "" {
			continue
		}

		w.wg.Add(1)
		go func(submissionID string) {
			defer w.wg.Done()
			if w.sem != nil {
				select {
				case w.sem <- struct{}{}:
					defer func() { <-w.sem }()
				case <-ctx.Done():
					return
				}
			}
			w.Judge(ctx, submissionID)
		}(id)
	}
}

// Wait blocks until every in-flight judging task has finished.
func (w *JudgeWorker) Wait() {
	w.wg.Wait()
}

// Judge runs the grading state machine for one submission.
func (w *JudgeWorker) Judge(ctx context.Context, submissionID string) {
	if !w.pause(ctx, w.cfg.CompileDelay) {
		w.logger.Warn("judging interrupted during compile phase", "submission_id", submissionID)
		return
	}

	sub, err := w.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		w.logger.Warn("judging aborted: submission not found", "submission_id", submissionID, "error", err)
		return
	}

	sub.Status = model.StatusRunning
	if err := w.submissionRepo.UpdateSubmission(ctx, sub); err != nil {
		w.logger.Warn("judging aborted: could not mark submission running", "submission_id", submissionID, "error", err)
		return
	}

	if !w.pause(ctx, w.cfg.ExecuteDelay) {
		w.logger.Warn("judging interrupted during execute phase", "submission_id", submissionID)
		return
	}

	problem, err := w.problemRepo.FindProblemByID(ctx, sub.ProblemID)
	if err != nil {
		w.logger.Warn("judging aborted: problem not found", "submission_id", submissionID, "problem_id", sub.ProblemID, "error", err)
		return
	}

	code := strings.ToLower(sub.Code)
	if w.grader.Evaluate(code, problem.Title, sub.Language) {
		sub.Status = model.StatusAccepted
		sub.Result = resultAccepted
		sub.Score = problem.Points
	} else {
		sub.Status = model.StatusWrongAnswer
		sub.Result = resultWrongAnswer
		sub.Score = 0
	}

	if err := w.submissionRepo.UpdateSubmission(ctx, sub); err != nil {
		w.logger.Warn("judging aborted: could not save verdict", "submission_id", submissionID, "error", err)
		return
	}
	w.logger.Info("submission judged",
		"submission_id", submissionID, "status", sub.Status, "score", sub.Score)
}

// pause sleeps for d, returning false if ctx is done first. A zero
// delay still honours an already-cancelled context.
func (w *JudgeWorker) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
