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
)

type ModuleService struct {
	curriculum
	log *logger.Logger
}

func NewModuleService(
	courseRepo repository.CourseRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	log *logger.Logger,
) *ModuleService {
	return &ModuleService{
		curriculum: curriculum{courses: courseRepo, modules: moduleRepo, tasks: taskRepo},
		log:        log,
	}
}

type CreateModuleRequest struct {
	CourseID string `json:"course" validate:"required"`
	Title    string `json:"title" validate:"required,max=255"`
}

type UpdateModuleRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (s *ModuleService) List(ctx context.Context, actor model.Actor, courseID string, includeInactive bool) ([]model.Module, error) {
	if courseID != "" && !validID(courseID) {
		return nil, fmt.Errorf("course must be a valid id: %w", common.ErrValidation)
	}
	vis := policy.Visibility(actor, includeInactive)
	modules, err := s.modules.List(ctx, repository.ModuleFilter{CourseID: courseID, Visibility: vis})
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	for i := range modules {
		if err := s.hydrateModule(ctx, &modules[i], vis); err != nil {
			return nil, err
		}
	}
	return modules, nil
}

func (s *ModuleService) Get(ctx context.Context, actor model.Actor, id string, includeInactive bool) (*model.Module, error) {
	vis := policy.Visibility(actor, includeInactive)
	m, _, err := s.module(ctx, id, vis)
	if err != nil {
		return nil, err
	}
	if err := s.hydrateModule(ctx, m, vis); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ModuleService) Create(ctx context.Context, actor model.Actor, req CreateModuleRequest) (*model.Module, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	course, err := s.course(ctx, req.CourseID, model.ActiveOnly)
	if err := parentForCreate(actor, course, err); err != nil {
		return nil, err
	}

	m := &model.Module{
		ID:       uuid.NewString(),
		CourseID: course.ID,
		Title:    req.Title,
		IsActive: true,
		Tasks:    []model.Task{},
	}
	if err := s.modules.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}
	s.log.Info("module created", "module_id", m.ID, "course_id", course.ID)
	return m, nil
}

func (s *ModuleService) Update(ctx context.Context, actor model.Actor, id string, req UpdateModuleRequest) (*model.Module, error) {
	trimOptional(req.Title)
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	m, course, err := s.module(ctx, id, model.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ModifyCourse, course.AuthorID); err != nil {
		return nil, err
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.modules.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	if err := s.hydrateModule(ctx, m, model.ActiveOnly); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ModuleService) Deactivate(ctx context.Context, actor model.Actor, id string) error {
	m, course, err := s.module(ctx, id, model.IncludeInactive)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ModifyCourse, course.AuthorID); err != nil {
		return err
	}
	if err := s.modules.SetActive(ctx, m.ID, false); err != nil {
		return fmt.Errorf("failed to deactivate module: %w", err)
	}
	s.log.Info("module deactivated", "module_id", m.ID, "by", actor.UserID)
	return nil
}
