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

	"github.com/google/uuid"
)

// trimOptional trims an optional field in place so blank input fails validation.
func trimOptional(v *string) {
	if v != nil {
		*v = strings.TrimSpace(*v)
	}
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// curriculum walks the Course -> Module -> Task tree shared by several services.
type curriculum struct {
	courses repository.CourseRepository
	modules repository.ModuleRepository
	tasks   repository.TaskRepository
}

func (c curriculum) course(ctx context.Context, id string, vis model.Visibility) (*model.Course, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	return c.courses.FindByID(ctx, id, vis)
}

// module returns the module and the course that owns it.
func (c curriculum) module(ctx context.Context, id string, vis model.Visibility) (*model.Module, *model.Course, error) {
	if !validID(id) {
		return nil, nil, common.ErrNotFound
	}
	m, err := c.modules.FindByID(ctx, id, vis)
	if err != nil {
		return nil, nil, err
	}
	course, err := c.courses.FindByID(ctx, m.CourseID, vis)
	if err != nil {
		return nil, nil, err
	}
	return m, course, nil
}

// task returns the task and the course that owns it.
func (c curriculum) task(ctx context.Context, id string, vis model.Visibility) (*model.Task, *model.Course, error) {
	if !validID(id) {
		return nil, nil, common.ErrNotFound
	}
	t, err := c.tasks.FindByID(ctx, id, vis)
	if err != nil {
		return nil, nil, err
	}
	_, course, err := c.module(ctx, t.ModuleID, vis)
	if err != nil {
		return nil, nil, err
	}
	return t, course, nil
}

// parentForCreate resolves the course a new child row will hang under and checks
// that actor may extend it. Missing or inactive parents and foreign courses are
// reported as validation failures.
func parentForCreate(actor model.Actor, course *model.Course, lookupErr error) error {
	if lookupErr != nil {
		if errors.Is(lookupErr, common.ErrNotFound) {
			return common.ErrCourseNotFound
		}
		return fmt.Errorf("failed to resolve parent course: %w", lookupErr)
	}
	if err := policy.Authorize(actor, policy.ModifyCourse, course.AuthorID); err != nil {
		return common.ErrCourseNotOwned
	}
	return nil
}

func (c curriculum) hydrateTask(ctx context.Context, t *model.Task, vis model.Visibility) error {
	ios, err := c.tasks.ListInputOutputs(ctx, t.ID, vis)
	if err != nil {
		return fmt.Errorf("failed to load input/outputs: %w", err)
	}
	t.InputOutputs = ios
	return nil
}

func (c curriculum) hydrateModule(ctx context.Context, m *model.Module, vis model.Visibility) error {
	tasks, err := c.tasks.List(ctx, repository.TaskFilter{ModuleID: m.ID, Visibility: vis})
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	for i := range tasks {
		if err := c.hydrateTask(ctx, &tasks[i], vis); err != nil {
			return err
		}
	}
	m.Tasks = tasks
	return nil
}
