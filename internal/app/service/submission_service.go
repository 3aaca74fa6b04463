package service

import (
	"context"
	"errors"
	"fmt"

	"stepik_backend/internal/app/policy"
	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
	"stepik_backend/internal/platform/logger"

	"github.com/google/uuid"
)

type SubmissionService struct {
	curriculum
	submissionRepo repository.SubmissionRepository
	enrollmentRepo repository.EnrollmentRepository
	log            *logger.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	log *logger.Logger,
) *SubmissionService {
	return &SubmissionService{
		curriculum:     curriculum{courses: courseRepo, modules: moduleRepo, tasks: taskRepo},
		submissionRepo: submissionRepo,
		enrollmentRepo: enrollmentRepo,
		log:            log,
	}
}

type CreateSubmissionRequest struct {
	TaskID      string `json:"task" validate:"required"`
	CodeStudent string `json:"code_student" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ListSubmissionsQuery struct {
	TaskID string
	Status string
	common.Pagination
}

func (s *SubmissionService) List(ctx context.Context, actor model.Actor, q ListSubmissionsQuery) (*common.PaginatedResponse[model.Submission], error) {
	filter := repository.SubmissionFilter{
		Scope:  policy.SubmissionScope(actor),
		Limit:  q.Limit(),
		Offset: q.Offset(),
	}
	if q.TaskID != "" {
		if !validID(q.TaskID) {
			return nil, fmt.Errorf("task must be a valid id: %w", common.ErrValidation)
		}
		filter.TaskID = q.TaskID
	}
	if q.Status != "" {
		status, err := model.ParseSubmissionStatus(q.Status)
		if err != nil {
			return nil, common.ErrInvalidStatus
		}
		filter.Status = status
	}

	subs, total, err := s.submissionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return &common.PaginatedResponse[model.Submission]{Results: subs, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

// Get returns the detail view with the full task nested. Submissions outside
// the actor's scope are reported as not found.
func (s *SubmissionService) Get(ctx context.Context, actor model.Actor, id string) (*model.Submission, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	sub, err := s.submissionRepo.FindByID(ctx, id, policy.SubmissionScope(actor))
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(ctx, sub.TaskID, model.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission task: %w", err)
	}
	if err := s.hydrateTask(ctx, task, model.ActiveOnly); err != nil {
		return nil, err
	}
	sub.Task = task
	return sub, nil
}

// Create stores a pending submission. Students must be enrolled in the
// task's course; the task and its ancestors must be active.
func (s *SubmissionService) Create(ctx context.Context, actor model.Actor, req CreateSubmissionRequest) (*model.Submission, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	task, course, err := s.task(ctx, req.TaskID, model.ActiveOnly)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("task not found: %w", common.ErrValidation)
		}
		return nil, fmt.Errorf("failed to resolve task: %w", err)
	}
	if actor.Role == model.RoleStudent {
		enrolled, err := s.enrollmentRepo.Exists(ctx, actor.UserID, course.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, fmt.Errorf("enroll in the course before submitting: %w", common.ErrForbidden)
		}
	}

	sub := &model.Submission{
		ID:          uuid.NewString(),
		UserID:      actor.UserID,
		TaskID:      task.ID,
		CodeStudent: req.CodeStudent,
		Status:      model.StatusPending,
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	s.log.Info("submission created", "submission_id", sub.ID, "task_id", task.ID, "user_id", actor.UserID)
	return s.submissionRepo.FindByID(ctx, sub.ID, model.SubmissionScope{})
}

// UpdateStatus grades a submission. Any of the three statuses may be assigned
// at any time; only the course author or an admin may do so.
func (s *SubmissionService) UpdateStatus(ctx context.Context, actor model.Actor, id string, req UpdateStatusRequest) (*model.Submission, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	sub, err := s.submissionRepo.FindByID(ctx, id, policy.SubmissionScope(actor))
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.GradeSubmission, sub.CourseAuthorID); err != nil {
		return nil, err
	}
	status, err := model.ParseSubmissionStatus(req.Status)
	if err != nil {
		return nil, common.ErrInvalidStatus
	}

	previous := sub.Status
	sub.Status = status
	if err := s.submissionRepo.UpdateStatus(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update submission status: %w", err)
	}
	s.log.Info("submission graded",
		"submission_id", sub.ID, "from", string(previous), "to", string(status), "grader_id", actor.UserID)
	return sub, nil
}

// MySubmissions lists the actor's own submissions regardless of role.
func (s *SubmissionService) MySubmissions(ctx context.Context, actor model.Actor) ([]model.Submission, error) {
	subs, _, err := s.submissionRepo.List(ctx, repository.SubmissionFilter{Scope: model.SubmissionScope{UserID: actor.UserID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}
