package handler

import (
	"net/http"

	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common"
	"stepik_backend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	courseService     *service.CourseService
	enrollmentService *service.EnrollmentService
	log               *logger.Logger
}

func NewCourseHandler(courseService *service.CourseService, enrollmentService *service.EnrollmentService, log *logger.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, enrollmentService: enrollmentService, log: log}
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCourses)
	r.Post("/", h.createCourse)
	// {courseID} also accepts a slug on GET.
	r.Get("/{courseID}", h.getCourse)
	r.Put("/{courseID}", h.updateCourse)
	r.Delete("/{courseID}", h.deleteCourse)
	r.Post("/{courseID}/enroll", h.enroll)
	r.Post("/{courseID}/unenroll", h.unenroll)
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.courseService.List(r.Context(), actorOf(r), service.ListCoursesQuery{
		AuthorID:        q.Get("author"),
		Search:          q.Get("search"),
		IncludeInactive: includeInactive(r),
		Pagination:      common.PaginationFromRequest(r),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCourseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	course, err := h.courseService.Create(r.Context(), actorOf(r), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.Get(r.Context(), actorOf(r), chi.URLParam(r, "courseID"), includeInactive(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCourseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	course, err := h.courseService.Update(r.Context(), actorOf(r), chi.URLParam(r, "courseID"), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.Deactivate(r.Context(), actorOf(r), chi.URLParam(r, "courseID")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	noContent(w)
}

func (h *CourseHandler) enroll(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.enrollmentService.Enroll(r.Context(), actorOf(r), chi.URLParam(r, "courseID"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, ActionResponse{
		Success:    true,
		Message:    "Successfully enrolled in course",
		Enrollment: enrollment,
	})
}

func (h *CourseHandler) unenroll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.enrollmentService.Unenroll(r.Context(), actorOf(r), chi.URLParam(r, "courseID")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	noContent(w)
}
