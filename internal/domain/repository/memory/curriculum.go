package memory

import (
	"context"
	"sort"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
)

type moduleRepo struct{ s *Store }

func (r *moduleRepo) Create(_ context.Context, m *model.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.CreatedAt = r.s.now()
	stored := *m
	stored.Tasks = nil
	r.s.modules = append(r.s.modules, &stored)
	return nil
}

func (r *moduleRepo) FindByID(_ context.Context, id string, vis model.Visibility) (*model.Module, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m := r.s.moduleByID(id); m != nil && vis.Admits(m.IsActive) {
		out := *m
		return &out, nil
	}
	return nil, common.ErrNotFound
}

func (r *moduleRepo) List(_ context.Context, f repository.ModuleFilter) ([]model.Module, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Module{}
	for _, m := range r.s.modules {
		if !f.Visibility.Admits(m.IsActive) || (f.CourseID != "" && m.CourseID != f.CourseID) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *moduleRepo) Update(_ context.Context, m *model.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.moduleByID(m.ID)
	if stored == nil {
		return common.ErrNotFound
	}
	stored.Title = m.Title
	stored.IsActive = m.IsActive
	return nil
}

func (r *moduleRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.moduleByID(id)
	if stored == nil {
		return common.ErrNotFound
	}
	stored.IsActive = active
	return nil
}

type taskRepo struct{ s *Store }

func (s *Store) taskView(t *model.Task) model.Task {
	out := *t
	out.SubmissionCount = 0
	for _, sub := range s.submissions {
		if sub.TaskID == t.ID {
			out.SubmissionCount++
		}
	}
	return out
}

func (r *taskRepo) Create(_ context.Context, t *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.CreatedAt = r.s.now()
	stored := *t
	stored.InputOutputs = nil
	r.s.tasks = append(r.s.tasks, &stored)
	return nil
}

func (r *taskRepo) FindByID(_ context.Context, id string, vis model.Visibility) (*model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t := r.s.taskByID(id); t != nil && vis.Admits(t.IsActive) {
		out := r.s.taskView(t)
		return &out, nil
	}
	return nil, common.ErrNotFound
}

func (r *taskRepo) List(_ context.Context, f repository.TaskFilter) ([]model.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Task{}
	for _, t := range r.s.tasks {
		if !f.Visibility.Admits(t.IsActive) || (f.ModuleID != "" && t.ModuleID != f.ModuleID) {
			continue
		}
		out = append(out, r.s.taskView(t))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *taskRepo) Update(_ context.Context, t *model.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.taskByID(t.ID)
	if stored == nil {
		return common.ErrNotFound
	}
	stored.Title = t.Title
	stored.Order = t.Order
	stored.TaskText = t.TaskText
	stored.IsActive = t.IsActive
	return nil
}

func (r *taskRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.taskByID(id)
	if stored == nil {
		return common.ErrNotFound
	}
	stored.IsActive = active
	return nil
}

func (r *taskRepo) CreateInputOutput(_ context.Context, io *model.InputOutput) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	io.CreatedAt = r.s.now()
	stored := *io
	r.s.ios = append(r.s.ios, &stored)
	return nil
}

func (r *taskRepo) FindInputOutputByID(_ context.Context, id string, vis model.Visibility) (*model.InputOutput, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, io := range r.s.ios {
		if io.ID == id && vis.Admits(io.IsActive) {
			out := *io
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *taskRepo) ListInputOutputs(_ context.Context, taskID string, vis model.Visibility) ([]model.InputOutput, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.InputOutput{}
	for _, io := range r.s.ios {
		if io.TaskID == taskID && vis.Admits(io.IsActive) {
			out = append(out, *io)
		}
	}
	return out, nil
}

func (r *taskRepo) SetInputOutputActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, io := range r.s.ios {
		if io.ID == id {
			io.IsActive = active
			return nil
		}
	}
	return common.ErrNotFound
}
