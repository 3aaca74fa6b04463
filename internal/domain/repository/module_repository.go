package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type ModuleFilter struct {
	CourseID   string
	Visibility model.Visibility
}

type ModuleRepository interface {
	Create(ctx context.Context, m *model.Module) error
	FindByID(ctx context.Context, id string, vis model.Visibility) (*model.Module, error)
	List(ctx context.Context, filter ModuleFilter) ([]model.Module, error)
	Update(ctx context.Context, m *model.Module) error
	SetActive(ctx context.Context, id string, active bool) error
}

type pgModuleRepository struct {
	db *sql.DB
}

func NewPgModuleRepository(db *sql.DB) ModuleRepository {
	return &pgModuleRepository{db: db}
}

const moduleSelect = `SELECT m.id, m.course_id, m.title, m.is_active, m.created_at FROM modules m`

func (r *pgModuleRepository) Create(ctx context.Context, m *model.Module) error {
	query := `INSERT INTO modules (id, course_id, title, is_active) VALUES ($1, $2, $3, $4) RETURNING created_at`
	if err := r.db.QueryRowContext(ctx, query, m.ID, m.CourseID, m.Title, m.IsActive).Scan(&m.CreatedAt); err != nil {
		return fmt.Errorf("pgModuleRepository.Create: %w", err)
	}
	return nil
}

func (r *pgModuleRepository) FindByID(ctx context.Context, id string, vis model.Visibility) (*model.Module, error) {
	var cond conditions
	cond.add("m.id = ?", id)
	cond.visible(vis, "m.is_active")

	m := &model.Module{}
	err := r.db.QueryRowContext(ctx, moduleSelect+cond.where(), cond.args...).
		Scan(&m.ID, &m.CourseID, &m.Title, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgModuleRepository.FindByID: %w", err)
	}
	return m, nil
}

func (r *pgModuleRepository) List(ctx context.Context, f ModuleFilter) ([]model.Module, error) {
	var cond conditions
	cond.visible(f.Visibility, "m.is_active")
	if f.CourseID != "" {
		cond.add("m.course_id = ?", f.CourseID)
	}

	rows, err := r.db.QueryContext(ctx, moduleSelect+cond.where()+` ORDER BY m.created_at ASC`, cond.args...)
	if err != nil {
		return nil, fmt.Errorf("pgModuleRepository.List query: %w", err)
	}
	defer rows.Close()

	modules := []model.Module{}
	for rows.Next() {
		var m model.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgModuleRepository.List scan: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgModuleRepository.List rows: %w", err)
	}
	return modules, nil
}

func (r *pgModuleRepository) Update(ctx context.Context, m *model.Module) error {
	res, err := r.db.ExecContext(ctx, `UPDATE modules SET title = $1, is_active = $2 WHERE id = $3`, m.Title, m.IsActive, m.ID)
	if err != nil {
		return fmt.Errorf("pgModuleRepository.Update: %w", err)
	}
	return expectOneRow(res, "pgModuleRepository.Update")
}

func (r *pgModuleRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE modules SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("pgModuleRepository.SetActive: %w", err)
	}
	return expectOneRow(res, "pgModuleRepository.SetActive")
}
