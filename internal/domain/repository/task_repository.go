package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type TaskFilter struct {
	ModuleID   string
	Visibility model.Visibility
}

type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, id string, vis model.Visibility) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	SetActive(ctx context.Context, id string, active bool) error

	CreateInputOutput(ctx context.Context, io *model.InputOutput) error
	FindInputOutputByID(ctx context.Context, id string, vis model.Visibility) (*model.InputOutput, error)
	ListInputOutputs(ctx context.Context, taskID string, vis model.Visibility) ([]model.InputOutput, error)
	SetInputOutputActive(ctx context.Context, id string, active bool) error
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

const taskSelect = `
	SELECT t.id, t.module_id, t.title, t.sort_order, t.task_text, t.is_active, t.created_at,
	       (SELECT COUNT(*) FROM submissions s WHERE s.task_id = t.id) AS submission_count
	FROM tasks t`

func scanTask(row rowScanner) (*model.Task, error) {
	t := &model.Task{}
	if err := row.Scan(&t.ID, &t.ModuleID, &t.Title, &t.Order, &t.TaskText, &t.IsActive, &t.CreatedAt, &t.SubmissionCount); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTaskRepository) Create(ctx context.Context, t *model.Task) error {
	query := `INSERT INTO tasks (id, module_id, title, sort_order, task_text, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, t.ID, t.ModuleID, t.Title, t.Order, t.TaskText, t.IsActive).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id string, vis model.Visibility) (*model.Task, error) {
	var cond conditions
	cond.add("t.id = ?", id)
	cond.visible(vis, "t.is_active")

	t, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+cond.where(), cond.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.FindByID: %w", err)
	}
	return t, nil
}

func (r *pgTaskRepository) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	var cond conditions
	cond.visible(f.Visibility, "t.is_active")
	if f.ModuleID != "" {
		cond.add("t.module_id = ?", f.ModuleID)
	}

	rows, err := r.db.QueryContext(ctx, taskSelect+cond.where()+` ORDER BY t.sort_order ASC, t.created_at ASC`, cond.args...)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.List query: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("pgTaskRepository.List scan: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTaskRepository.List rows: %w", err)
	}
	return tasks, nil
}

func (r *pgTaskRepository) Update(ctx context.Context, t *model.Task) error {
	query := `UPDATE tasks SET title = $1, sort_order = $2, task_text = $3, is_active = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, t.Title, t.Order, t.TaskText, t.IsActive, t.ID)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Update: %w", err)
	}
	return expectOneRow(res, "pgTaskRepository.Update")
}

func (r *pgTaskRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.SetActive: %w", err)
	}
	return expectOneRow(res, "pgTaskRepository.SetActive")
}

// --- Input/output fixtures ---

const inputOutputSelect = `SELECT io.id, io.task_id, io.input, io.output, io.is_active, io.created_at FROM input_outputs io`

func (r *pgTaskRepository) CreateInputOutput(ctx context.Context, io *model.InputOutput) error {
	query := `INSERT INTO input_outputs (id, task_id, input, output, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, io.ID, io.TaskID, io.Input, io.Output, io.IsActive).Scan(&io.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.CreateInputOutput: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) FindInputOutputByID(ctx context.Context, id string, vis model.Visibility) (*model.InputOutput, error) {
	var cond conditions
	cond.add("io.id = ?", id)
	cond.visible(vis, "io.is_active")

	io := &model.InputOutput{}
	err := r.db.QueryRowContext(ctx, inputOutputSelect+cond.where(), cond.args...).
		Scan(&io.ID, &io.TaskID, &io.Input, &io.Output, &io.IsActive, &io.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.FindInputOutputByID: %w", err)
	}
	return io, nil
}

func (r *pgTaskRepository) ListInputOutputs(ctx context.Context, taskID string, vis model.Visibility) ([]model.InputOutput, error) {
	var cond conditions
	cond.add("io.task_id = ?", taskID)
	cond.visible(vis, "io.is_active")

	rows, err := r.db.QueryContext(ctx, inputOutputSelect+cond.where()+` ORDER BY io.created_at ASC`, cond.args...)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListInputOutputs query: %w", err)
	}
	defer rows.Close()

	ios := []model.InputOutput{}
	for rows.Next() {
		var io model.InputOutput
		if err := rows.Scan(&io.ID, &io.TaskID, &io.Input, &io.Output, &io.IsActive, &io.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTaskRepository.ListInputOutputs scan: %w", err)
		}
		ios = append(ios, io)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListInputOutputs rows: %w", err)
	}
	return ios, nil
}

func (r *pgTaskRepository) SetInputOutputActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE input_outputs SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.SetInputOutputActive: %w", err)
	}
	return expectOneRow(res, "pgTaskRepository.SetInputOutputActive")
}
