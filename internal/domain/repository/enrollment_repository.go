package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type EnrollmentRepository interface {
	// Create fails with common.ErrConflict when the (user, course) pair exists.
	Create(ctx context.Context, e *model.Enrollment) error
	Delete(ctx context.Context, userID, courseID string) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error)
}

type pgEnrollmentRepository struct {
	db *sql.DB
}

func NewPgEnrollmentRepository(db *sql.DB) EnrollmentRepository {
	return &pgEnrollmentRepository{db: db}
}

func (r *pgEnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	query := `INSERT INTO enrollments (id, user_id, course_id) VALUES ($1, $2, $3) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, e.ID, e.UserID, e.CourseID).Scan(&e.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("enrollment already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgEnrollmentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEnrollmentRepository) Delete(ctx context.Context, userID, courseID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return fmt.Errorf("pgEnrollmentRepository.Delete: %w", err)
	}
	return expectOneRow(res, "pgEnrollmentRepository.Delete")
}

func (r *pgEnrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`, userID, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgEnrollmentRepository.Exists: %w", err)
	}
	return exists, nil
}

const enrollmentSelect = `
	SELECT e.id, e.user_id, e.course_id, e.created_at,
	       u.username, u.email, u.role,
	       c.slug, c.title, c.author_id, c.is_active, c.created_at, c.updated_at
	FROM enrollments e
	JOIN users u ON u.id = e.user_id
	JOIN courses c ON c.id = e.course_id`

func (r *pgEnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	return r.list(ctx, "ListByUser", enrollmentSelect+` WHERE e.user_id = $1 ORDER BY e.created_at DESC`, userID)
}

func (r *pgEnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	return r.list(ctx, "ListByCourse", enrollmentSelect+` WHERE e.course_id = $1 ORDER BY e.created_at ASC`, courseID)
}

func (r *pgEnrollmentRepository) list(ctx context.Context, op, query string, arg string) ([]model.Enrollment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("pgEnrollmentRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		e := model.Enrollment{User: &model.UserBrief{}, Course: &model.Course{}}
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CourseID, &e.CreatedAt,
			&e.User.Username, &e.User.Email, &e.User.Role,
			&e.Course.Slug, &e.Course.Title, &e.Course.AuthorID, &e.Course.IsActive, &e.Course.CreatedAt, &e.Course.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgEnrollmentRepository.%s scan: %w", op, err)
		}
		e.User.ID = e.UserID
		e.Course.ID = e.CourseID
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEnrollmentRepository.%s rows: %w", op, err)
	}
	return enrollments, nil
}
