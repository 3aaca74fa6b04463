package handler

import (
	"net/http"

	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common"
	"stepik_backend/internal/platform/logger"
)

type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
	log               *logger.Logger
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService, log *logger.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, log: log}
}

// ListMine serves GET /enrollments/.
func (h *EnrollmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.enrollmentService.ListMine(r.Context(), actorOf(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, enrollments)
}

// MyCourses serves GET /my-courses/.
func (h *EnrollmentHandler) MyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.enrollmentService.MyCourses(r.Context(), actorOf(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}
