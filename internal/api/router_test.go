package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codearena/internal/app/service"
	"codearena/internal/domain/model"
	"codearena/internal/domain/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.CreateContest(ctx, &model.Contest{ID: "c1", Name: "Weekly Sprint #1"}))
	require.NoError(t, store.CreateProblem(ctx, &model.Problem{ID: "p1", ContestID: "c1", Title: "Add Two Numbers", Points: 10}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	contestService := service.NewContestService(store, store, store)
	submissionService := service.NewSubmissionService(store, memory.NewQueue(8), logger)
	leaderboardService := service.NewLeaderboardService(store, store)
	return store, NewRouter(contestService, submissionService, leaderboardService)
}

func TestCreateSubmissionReturnsAccepted(t *testing.T) {
	_, router := newTestRouter(t)

	body := `{"user_id":"u1","problem_id":"p1","code":"print(1+1)","language":"PYTHON"}`
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var sub model.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, model.StatusPending, sub.Status)
	assert.Equal(t, 0, sub.Score)
}

func TestGetSubmissionNotFound(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeaderboardEndpoint(t *testing.T) {
	store, router := newTestRouter(t)
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, &model.User{ID: "u-alice", Username: "alice", ContestID: "c1"}))

	req := httptest.NewRequest(http.MethodGet, "/api/contests/c1/leaderboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestJoinContestEndpoint(t *testing.T) {
	_, router := newTestRouter(t)

	body := `{"username":"alice","contest_id":"c1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contests/join", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)
}
