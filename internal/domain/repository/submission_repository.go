package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type SubmissionFilter struct {
	Scope  model.SubmissionScope
	TaskID string
	Status model.SubmissionStatus
	Limit  int
	Offset int
}

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	// FindByID returns common.ErrNotFound for rows outside scope.
	FindByID(ctx context.Context, id string, scope model.SubmissionScope) (*model.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int, error)
	UpdateStatus(ctx context.Context, sub *model.Submission) error
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionFrom = `
	FROM submissions s
	JOIN users u ON u.id = s.user_id
	JOIN tasks t ON t.id = s.task_id
	JOIN modules m ON m.id = t.module_id
	JOIN courses c ON c.id = m.course_id`

const submissionSelect = `
	SELECT s.id, s.user_id, u.username, u.email, u.role,
	       s.task_id, t.title, m.course_id, c.author_id,
	       s.code_student, s.status, s.created_at, s.updated_at` + submissionFrom

func scanSubmission(row rowScanner) (*model.Submission, error) {
	s := &model.Submission{User: &model.UserBrief{}}
	err := row.Scan(
		&s.ID, &s.UserID, &s.User.Username, &s.User.Email, &s.User.Role,
		&s.TaskID, &s.TaskTitle, &s.CourseID, &s.CourseAuthorID,
		&s.CodeStudent, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.User.ID = s.UserID
	return s, nil
}

func scopeConditions(scope model.SubmissionScope) conditions {
	var cond conditions
	if scope.UserID != "" {
		cond.add("s.user_id = ?", scope.UserID)
	}
	if scope.CourseAuthorID != "" {
		cond.add("c.author_id = ?", scope.CourseAuthorID)
	}
	return cond
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, task_id, code_student, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.UserID, sub.TaskID, sub.CodeStudent, sub.Status).
		Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string, scope model.SubmissionScope) (*model.Submission, error) {
	cond := scopeConditions(scope)
	cond.add("s.id = ?", id)

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, submissionSelect+cond.where(), cond.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) List(ctx context.Context, f SubmissionFilter) ([]model.Submission, int, error) {
	cond := scopeConditions(f.Scope)
	if f.TaskID != "" {
		cond.add("s.task_id = ?", f.TaskID)
	}
	if f.Status != "" {
		cond.add("s.status = ?", f.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+submissionFrom+cond.where(), cond.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.List count: %w", err)
	}

	query := submissionSelect + cond.where() +
		fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", cond.next(), cond.next()+1)
	args := append(cond.args, limitArg(f.Limit), f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.List query: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgSubmissionRepository.List scan: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.List rows: %w", err)
	}
	return subs, total, nil
}

// UpdateStatus writes sub.Status and refreshes sub.UpdatedAt.
func (r *pgSubmissionRepository) UpdateStatus(ctx context.Context, sub *model.Submission) error {
	query := `UPDATE submissions SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, sub.Status, sub.ID).Scan(&sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgSubmissionRepository.UpdateStatus: %w", err)
	}
	return nil
}
