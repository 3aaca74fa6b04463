package service

import (
	"context"
	"fmt"
	"strings"

	"stepik_backend/internal/app/policy"
	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
	"stepik_backend/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type CourseService struct {
	curriculum
	enrollmentRepo repository.EnrollmentRepository
	log            *logger.Logger
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	enrollmentRepo repository.EnrollmentRepository,
	log *logger.Logger,
) *CourseService {
	return &CourseService{
		curriculum:     curriculum{courses: courseRepo, modules: moduleRepo, tasks: taskRepo},
		enrollmentRepo: enrollmentRepo,
		log:            log,
	}
}

type CreateCourseRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type UpdateCourseRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ListCoursesQuery struct {
	AuthorID        string
	Search          string
	IncludeInactive bool
	common.Pagination
}

func (s *CourseService) List(ctx context.Context, actor model.Actor, q ListCoursesQuery) (*common.PaginatedResponse[model.Course], error) {
	if q.AuthorID != "" && !validID(q.AuthorID) {
		return nil, fmt.Errorf("author must be a valid id: %w", common.ErrValidation)
	}
	courses, total, err := s.courses.List(ctx, repository.CourseFilter{
		AuthorID:   q.AuthorID,
		Search:     strings.TrimSpace(q.Search),
		Visibility: policy.Visibility(actor, q.IncludeInactive),
		Limit:      q.Limit(),
		Offset:     q.Offset(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return &common.PaginatedResponse[model.Course]{Results: courses, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (s *CourseService) Create(ctx context.Context, actor model.Actor, req CreateCourseRequest) (*model.Course, error) {
	if err := policy.Authorize(actor, policy.CreateCourse, ""); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	base := slug.Make(req.Title)
	if base == "" {
		base = "course"
	}
	course := &model.Course{
		ID:       id,
		Slug:     base + "-" + id[:8],
		Title:    req.Title,
		AuthorID: actor.UserID,
		IsActive: true,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	s.log.Info("course created", "course_id", course.ID, "author_id", actor.UserID)
	return s.courses.FindByID(ctx, course.ID, model.IncludeInactive)
}

// Get resolves ref as a course id or slug and returns the detail view
// with nested modules, tasks and enrollments.
func (s *CourseService) Get(ctx context.Context, actor model.Actor, ref string, includeInactive bool) (*model.Course, error) {
	vis := policy.Visibility(actor, includeInactive)
	var (
		course *model.Course
		err    error
	)
	if validID(ref) {
		course, err = s.courses.FindByID(ctx, ref, vis)
	} else {
		course, err = s.courses.FindBySlug(ctx, ref, vis)
	}
	if err != nil {
		return nil, err
	}

	modules, err := s.modules.List(ctx, repository.ModuleFilter{CourseID: course.ID, Visibility: vis})
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	for i := range modules {
		if err := s.hydrateModule(ctx, &modules[i], vis); err != nil {
			return nil, err
		}
	}
	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	for i := range enrollments {
		enrollments[i].Course = nil
	}
	course.Modules = modules
	course.Enrollments = enrollments
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, actor model.Actor, courseID string, req UpdateCourseRequest) (*model.Course, error) {
	trimOptional(req.Title)
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	course, err := s.course(ctx, courseID, model.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ModifyCourse, course.AuthorID); err != nil {
		return nil, err
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

// Deactivate soft-deletes the course; it stays in the store.
func (s *CourseService) Deactivate(ctx context.Context, actor model.Actor, courseID string) error {
	course, err := s.course(ctx, courseID, model.IncludeInactive)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ModifyCourse, course.AuthorID); err != nil {
		return err
	}
	if err := s.courses.SetActive(ctx, course.ID, false); err != nil {
		return fmt.Errorf("failed to deactivate course: %w", err)
	}
	s.log.Info("course deactivated", "course_id", course.ID, "by", actor.UserID)
	return nil
}
