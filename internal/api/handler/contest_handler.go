package handler

import (
	"encoding/json"
	"net/http"

	"codearena/internal/app/service"
	"codearena/internal/common"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService     *service.ContestService
	submissionService  *service.SubmissionService
	leaderboardService *service.LeaderboardService
}

func NewContestHandler(
	cs *service.ContestService,
	ss *service.SubmissionService,
	ls *service.LeaderboardService,
) *ContestHandler {
	return &ContestHandler{contestService: cs, submissionService: ss, leaderboardService: ls}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Post("/join", h.joinContest)
	r.Get("/{contestID}", h.getContest)
	r.Get("/{contestID}/leaderboard", h.getLeaderboard)
	r.Get("/{contestID}/submissions", h.listSubmissions)
}

type JoinContestRequest struct {
	Username  string `json:"username"`
	ContestID string `json:"contest_id"`
}

func (h *ContestHandler) joinContest(w http.ResponseWriter, r *http.Request) {
	var req JoinContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.ContestID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "username and contest_id are required")
		return
	}

	user, err := h.contestService.JoinContest(r.Context(), req.Username, req.ContestID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	contest, err := h.contestService.GetContest(r.Context(), chi.URLParam(r, "contestID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contest)
}

func (h *ContestHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := h.leaderboardService.GetLeaderboard(r.Context(), chi.URLParam(r, "contestID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, leaderboard)
}

func (h *ContestHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.ListContestSubmissions(r.Context(), chi.URLParam(r, "contestID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}
