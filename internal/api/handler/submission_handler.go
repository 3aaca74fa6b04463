package handler

import (
	"net/http"

	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common"
	"stepik_backend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	log               *logger.Logger
}

func NewSubmissionHandler(submissionService *service.SubmissionService, log *logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, log: log}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listSubmissions)
	r.Post("/", h.createSubmission)
	r.Get("/my_submissions", h.mySubmissions)
	r.Get("/{submissionID}", h.getSubmission)
	r.Post("/{submissionID}/update_status", h.updateStatus)
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.submissionService.List(r.Context(), actorOf(r), service.ListSubmissionsQuery{
		TaskID:     q.Get("task"),
		Status:     q.Get("status"),
		Pagination: common.PaginationFromRequest(r),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	submission, err := h.submissionService.Create(r.Context(), actorOf(r), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, submission)
}

func (h *SubmissionHandler) mySubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.MySubmissions(r.Context(), actorOf(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.submissionService.Get(r.Context(), actorOf(r), chi.URLParam(r, "submissionID"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}

func (h *SubmissionHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	submission, err := h.submissionService.UpdateStatus(r.Context(), actorOf(r), chi.URLParam(r, "submissionID"), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ActionResponse{
		Success:    true,
		Message:    "Status updated to " + string(submission.Status),
		Submission: submission,
	})
}
