package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"codearena/internal/app/judge"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	v float64
}

func (f fixedRand) Float64() float64 { return f.v }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(store *memory.Store) *JudgeWorker {
	return New(memory.NewQueue(8), store, store, judge.New(fixedRand{v: 0}), Config{}, testLogger())
}

func seedProblem(t *testing.T, store *memory.Store, title string, points int) *model.Problem {
	t.Helper()
	p := &model.Problem{ID: "p-" + title, ContestID: "c1", Title: title, Points: points}
	require.NoError(t, store.CreateProblem(context.Background(), p))
	return p
}

func seedSubmission(t *testing.T, store *memory.Store, problemID, code, language string) *model.Submission {
	t.Helper()
	sub := &model.Submission{
		ID:          "s-" + problemID,
		UserID:      "u1",
		ProblemID:   problemID,
		Code:        code,
		Language:    language,
		Status:      model.StatusPending,
		Version:     1,
		SubmittedAt: time.Now(),
	}
	require.NoError(t, store.CreateSubmission(context.Background(), sub))
	return sub
}

func TestJudgeAcceptsMatchingSubmission(t *testing.T) {
	store := memory.NewStore()
	problem := seedProblem(t, store, "Add Two Numbers", 10)
	sub := seedSubmission(t, store, problem.ID, "#include<iostream>\nint main(){cout<<1+1;}", model.LanguageCPP)

	newTestWorker(store).Judge(context.Background(), sub.ID)

	got, err := store.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, got.Status)
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, resultAccepted, got.Result)
}

func TestJudgeRejectsEmptyCode(t *testing.T) {
	store := memory.NewStore()
	problem := seedProblem(t, store, "Add Two Numbers", 10)
	sub := seedSubmission(t, store, problem.ID, "", model.LanguageJava)

	newTestWorker(store).Judge(context.Background(), sub.ID)

	got, err := store.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWrongAnswer, got.Status)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, resultWrongAnswer, got.Result)
}

func TestJudgeCaseFoldsCodeBeforeGrading(t *testing.T) {
	store := memory.NewStore()
	problem := seedProblem(t, store, "Factorial", 20)
	sub := seedSubmission(t, store, problem.ID, "PRINT(FACTORIAL(N))", "PYTHON")

	newTestWorker(store).Judge(context.Background(), sub.ID)

	got, err := store.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, got.Status)
	assert.Equal(t, 20, got.Score)
}

type recordingRepo struct {
	*memory.Store
	mu       sync.Mutex
	statuses []model.SubmissionStatus
}

func (r *recordingRepo) UpdateSubmission(ctx context.Context, sub *model.Submission) error {
	if err := r.Store.UpdateSubmission(ctx, sub); err != nil {
		return err
	}
	r.mu.Lock()
	r.statuses = append(r.statuses, sub.Status)
	r.mu.Unlock()
	return nil
}

func TestJudgeTransitionsInOrder(t *testing.T) {
	store := memory.NewStore()
	problem := seedProblem(t, store, "Add Two Numbers", 10)
	sub := seedSubmission(t, store, problem.ID, "#include<iostream>\nint main(){cout<<1+1;}", model.LanguageCPP)

	repo := &recordingRepo{Store: store}
	w := New(memory.NewQueue(1), repo, store, judge.New(fixedRand{v: 0}), Config{}, testLogger())
	w.Judge(context.Background(), sub.ID)

	assert.Equal(t, []model.SubmissionStatus{model.StatusRunning, model.StatusAccepted}, repo.statuses)
}

func TestJudgeMissingSubmissionAbortsSilently(t *testing.T) {
	store := memory.NewStore()
	assert.NotPanics(t, func() {
		newTestWorker(store).Judge(context.Background(), "ghost")
	})
}

func TestJudgeMissingProblemLeavesSubmissionRunning(t *testing.T) {
	store := memory.NewStore()
	sub := seedSubmission(t, store, "no-such-problem", "print(1)", "PYTHON")

	newTestWorker(store).Judge(context.Background(), sub.ID)

	got, err := store.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRunning, got.Status)
	assert.Equal(t, 0, got.Score)
}

func TestJudgeCancelledContextLeavesSubmissionPending(t *testing.T) {
	store := memory.NewStore()
	problem := seedProblem(t, store, "Add Two Numbers", 10)
	sub := seedSubmission(t, store, problem.ID, "#include<iostream>\nint main(){cout<<1+1;}", model.LanguageCPP)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := New(memory.NewQueue(1), store, store, judge.New(fixedRand{v: 0}), Config{CompileDelay: 50 * time.Millisecond}, testLogger())
	w.Judge(ctx, sub.ID)

	got, err := store.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestStartConsumesQueue(t *testing.T) {
	store := memory.NewStore()
	problem := seedProblem(t, store, "Add Two Numbers", 10)
	sub := seedSubmission(t, store, problem.ID, "#include<iostream>\nint main(){cout<<1+1;}", model.LanguageCPP)

	q := memory.NewQueue(8)
	w := New(q, store, store, judge.New(fixedRand{v: 0}), Config{MaxConcurrent: 2}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, q.Enqueue(ctx, sub.ID))

	assert.Eventually(t, func() bool {
		got, err := store.GetSubmissionByID(context.Background(), sub.ID)
		return err == nil && got.Status.Terminal()
	}, 2*time.Second, 10*time.Millisecond)
}
