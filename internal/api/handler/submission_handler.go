package handler

import (
	"encoding/json"
	"net/http"

	"codearena/internal/app/service"
	"codearena/internal/common"
	"codearena/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createSubmission)
	r.Get("/{submissionID}", h.getSubmission)
	r.Put("/{submissionID}", h.updateSubmission)
}

type SubmitCodeRequest struct {
	UserID    string `json:"user_id"`
	ProblemID string `json:"problem_id"`
	Code      string `json:"code"`
	Language  string `json:"language,omitempty"`
}

func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	var req SubmitCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.ProblemID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "user_id and problem_id are required")
		return
	}

	submission, err := h.submissionService.SubmitCode(r.Context(), req.UserID, req.ProblemID, req.Code, req.Language)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	// 202: the record is persisted but grading happens asynchronously.
	common.RespondWithJSON(w, http.StatusAccepted, submission)
}

func (h *SubmissionHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.submissionService.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}

type UpdateSubmissionRequest struct {
	Status model.SubmissionStatus `json:"status"`
	Result string                 `json:"result"`
	Score  int                    `json:"score"`
}

// updateSubmission is the administrative override path; it bypasses
// the judging state machine entirely.
func (h *SubmissionHandler) updateSubmission(w http.ResponseWriter, r *http.Request) {
	var req UpdateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	submission, err := h.submissionService.UpdateSubmission(
		r.Context(), chi.URLParam(r, "submissionID"), req.Status, req.Result, req.Score)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
