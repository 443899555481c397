package memory

import (
	"context"
	"testing"
	"time"

	"codearena/internal/common"
	"codearena/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSubmissionRejectsStaleVersion(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.CreateSubmission(ctx, &model.Submission{
		ID: "s1", UserID: "u1", ProblemID: "p1",
		Status: model.StatusPending, Version: 1, SubmittedAt: time.Now(),
	}))

	first, err := store.GetSubmissionByID(ctx, "s1")
	require.NoError(t, err)
	second, err := store.GetSubmissionByID(ctx, "s1")
	require.NoError(t, err)

	first.Status = model.StatusRunning
	require.NoError(t, store.UpdateSubmission(ctx, first))

	// The second copy still carries the old version; its write loses.
	second.Status = model.StatusAccepted
	err = store.UpdateSubmission(ctx, second)
	assert.ErrorIs(t, err, common.ErrConflict)

	stored, err := store.GetSubmissionByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRunning, stored.Status)
}

func TestUpdateSubmissionMissingRecord(t *testing.T) {
	store := NewStore()
	err := store.UpdateSubmission(context.Background(), &model.Submission{ID: "ghost", Version: 1})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListSubmissionsByContestFiltersByOwner(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, &model.User{ID: "u1", Username: "alice", ContestID: "c1"}))
	require.NoError(t, store.CreateUser(ctx, &model.User{ID: "u2", Username: "bob", ContestID: "c2"}))
	require.NoError(t, store.CreateSubmission(ctx, &model.Submission{
		ID: "s1", UserID: "u1", ProblemID: "p1", Status: model.StatusPending, Version: 1, SubmittedAt: time.Now(),
	}))
	require.NoError(t, store.CreateSubmission(ctx, &model.Submission{
		ID: "s2", UserID: "u2", ProblemID: "p1", Status: model.StatusPending, Version: 1, SubmittedAt: time.Now(),
	}))

	subs, err := store.ListSubmissionsByContest(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "s1", subs[0].ID)
}
