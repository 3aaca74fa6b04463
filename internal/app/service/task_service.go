package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stepik_backend/internal/app/policy"
	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
	"stepik_backend/internal/platform/logger"

	"github.com/google/uuid"
)

type TaskService struct {
	curriculum
	log *logger.Logger
}

func NewTaskService(
	courseRepo repository.CourseRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	log *logger.Logger,
) *TaskService {
	return &TaskService{
		curriculum: curriculum{courses: courseRepo, modules: moduleRepo, tasks: taskRepo},
		log:        log,
	}
}

type CreateTaskRequest struct {
	ModuleID string `json:"module" validate:"required"`
	Title    string `json:"title" validate:"required,max=255"`
	Order    int    `json:"order" validate:"min=0"`
	TaskText string `json:"task_text" validate:"required"`
}

type UpdateTaskRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Order    *int    `json:"order,omitempty" validate:"omitempty,min=0"`
	TaskText *string `json:"task_text,omitempty" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type CreateInputOutputRequest struct {
	Input  string `json:"input"`
	Output string `json:"output" validate:"required"`
}

func (s *TaskService) List(ctx context.Context, actor model.Actor, moduleID string, includeInactive bool) ([]model.Task, error) {
	if moduleID != "" && !validID(moduleID) {
		return nil, fmt.Errorf("module must be a valid id: %w", common.ErrValidation)
	}
	vis := policy.Visibility(actor, includeInactive)
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{ModuleID: moduleID, Visibility: vis})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	for i := range tasks {
		if err := s.hydrateTask(ctx, &tasks[i], vis); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, actor model.Actor, id string, includeInactive bool) (*model.Task, error) {
	vis := policy.Visibility(actor, includeInactive)
	t, _, err := s.task(ctx, id, vis)
	if err != nil {
		return nil, err
	}
	if err := s.hydrateTask(ctx, t, vis); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, actor model.Actor, req CreateTaskRequest) (*model.Task, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	_, course, err := s.module(ctx, req.ModuleID, model.ActiveOnly)
	if err := parentForCreate(actor, course, err); err != nil {
		return nil, err
	}

	t := &model.Task{
		ID:           uuid.NewString(),
		ModuleID:     req.ModuleID,
		Title:        req.Title,
		Order:        req.Order,
		TaskText:     req.TaskText,
		IsActive:     true,
		InputOutputs: []model.InputOutput{},
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.log.Info("task created", "task_id", t.ID, "module_id", t.ModuleID)
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, actor model.Actor, id string, req UpdateTaskRequest) (*model.Task, error) {
	trimOptional(req.Title)
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	t, err := s.ownedTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Order != nil {
		t.Order = *req.Order
	}
	if req.TaskText != nil {
		t.TaskText = *req.TaskText
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := s.hydrateTask(ctx, t, model.ActiveOnly); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Deactivate(ctx context.Context, actor model.Actor, id string) error {
	t, err := s.ownedTask(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.tasks.SetActive(ctx, t.ID, false); err != nil {
		return fmt.Errorf("failed to deactivate task: %w", err)
	}
	s.log.Info("task deactivated", "task_id", t.ID, "by", actor.UserID)
	return nil
}

// ownedTask loads a task regardless of visibility and checks actor may modify it.
func (s *TaskService) ownedTask(ctx context.Context, actor model.Actor, id string) (*model.Task, error) {
	t, course, err := s.task(ctx, id, model.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ModifyCourse, course.AuthorID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) ListInputOutputs(ctx context.Context, actor model.Actor, taskID string, includeInactive bool) ([]model.InputOutput, error) {
	vis := policy.Visibility(actor, includeInactive)
	t, _, err := s.task(ctx, taskID, vis)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListInputOutputs(ctx, t.ID, vis)
}

func (s *TaskService) CreateInputOutput(ctx context.Context, actor model.Actor, taskID string, req CreateInputOutputRequest) (*model.InputOutput, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	t, course, err := s.task(ctx, taskID, model.ActiveOnly)
	if errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if err := parentForCreate(actor, course, err); err != nil {
		return nil, err
	}

	io := &model.InputOutput{
		ID:       uuid.NewString(),
		TaskID:   t.ID,
		Input:    req.Input,
		Output:   req.Output,
		IsActive: true,
	}
	if err := s.tasks.CreateInputOutput(ctx, io); err != nil {
		return nil, fmt.Errorf("failed to create input/output: %w", err)
	}
	return io, nil
}

func (s *TaskService) DeactivateInputOutput(ctx context.Context, actor model.Actor, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	io, err := s.tasks.FindInputOutputByID(ctx, id, model.IncludeInactive)
	if err != nil {
		return err
	}
	if _, err := s.ownedTask(ctx, actor, io.TaskID); err != nil {
		return err
	}
	if err := s.tasks.SetInputOutputActive(ctx, io.ID, false); err != nil {
		return fmt.Errorf("failed to deactivate input/output: %w", err)
	}
	return nil
}
