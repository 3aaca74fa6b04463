package service

import (
	"context"
	"errors"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
	"stepik_backend/internal/platform/logger"

	"github.com/google/uuid"
)

type EnrollmentService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	log            *logger.Logger
}

func NewEnrollmentService(courseRepo repository.CourseRepository, enrollmentRepo repository.EnrollmentRepository, log *logger.Logger) *EnrollmentService {
	return &EnrollmentService{courseRepo: courseRepo, enrollmentRepo: enrollmentRepo, log: log}
}

func (s *EnrollmentService) activeCourse(ctx context.Context, courseID string) (*model.Course, error) {
	if !validID(courseID) {
		return nil, common.ErrNotFound
	}
	return s.courseRepo.FindByID(ctx, courseID, model.ActiveOnly)
}

// Enroll records the actor in an active course. A second call for the same
// pair fails with common.ErrAlreadyEnrolled and leaves a single row.
func (s *EnrollmentService) Enroll(ctx context.Context, actor model.Actor, courseID string) (*model.Enrollment, error) {
	course, err := s.activeCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrollment := &model.Enrollment{
		ID:       uuid.NewString(),
		UserID:   actor.UserID,
		CourseID: course.ID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}
	course.EnrollmentCount++
	enrollment.Course = course
	s.log.Info("user enrolled", "user_id", actor.UserID, "course_id", course.ID)
	return enrollment, nil
}

// Unenroll removes the actor's enrollment or fails with common.ErrNotEnrolled.
func (s *EnrollmentService) Unenroll(ctx context.Context, actor model.Actor, courseID string) (*model.Course, error) {
	course, err := s.activeCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentRepo.Delete(ctx, actor.UserID, course.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to unenroll: %w", err)
	}
	s.log.Info("user unenrolled", "user_id", actor.UserID, "course_id", course.ID)
	return course, nil
}

func (s *EnrollmentService) ListMine(ctx context.Context, actor model.Actor) ([]model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// MyCourses lists the active courses the actor is enrolled in.
func (s *EnrollmentService) MyCourses(ctx context.Context, actor model.Actor) ([]model.Course, error) {
	courses, err := s.courseRepo.ListByEnrolledUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	return courses, nil
}
