package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type CourseFilter struct {
	AuthorID   string
	Search     string // case-insensitive title match
	Visibility model.Visibility
	Limit      int
	Offset     int
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string, vis model.Visibility) (*model.Course, error)
	FindBySlug(ctx context.Context, slug string, vis model.Visibility) (*model.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]model.Course, int, error)
	ListByEnrolledUser(ctx context.Context, userID string) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	SetActive(ctx context.Context, id string, active bool) error
}

type pgCourseRepository struct {
	db *sql.DB
}

func NewPgCourseRepository(db *sql.DB) CourseRepository {
	return &pgCourseRepository{db: db}
}

const courseSelect = `
	SELECT c.id, c.slug, c.title, c.author_id, u.username, u.email, u.role,
	       c.is_active, c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM modules m WHERE m.course_id = c.id AND m.is_active) AS modules_count,
	       (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS enrollment_count
	FROM courses c
	JOIN users u ON u.id = c.author_id`

func scanCourse(row rowScanner) (*model.Course, error) {
	c := &model.Course{Author: &model.UserBrief{}}
	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.AuthorID, &c.Author.Username, &c.Author.Email, &c.Author.Role,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.ModulesCount, &c.EnrollmentCount,
	)
	if err != nil {
		return nil, err
	}
	c.Author.ID = c.AuthorID
	return c, nil
}

func (r *pgCourseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `INSERT INTO courses (id, slug, title, author_id, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.Slug, c.Title, c.AuthorID, c.IsActive).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("course with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCourseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) FindByID(ctx context.Context, id string, vis model.Visibility) (*model.Course, error) {
	return r.findOne(ctx, "FindByID", "c.id = ?", id, vis)
}

func (r *pgCourseRepository) FindBySlug(ctx context.Context, slug string, vis model.Visibility) (*model.Course, error) {
	return r.findOne(ctx, "FindBySlug", "c.slug = ?", slug, vis)
}

func (r *pgCourseRepository) findOne(ctx context.Context, op, expr string, arg interface{}, vis model.Visibility) (*model.Course, error) {
	var cond conditions
	cond.add(expr, arg)
	cond.visible(vis, "c.is_active")

	c, err := scanCourse(r.db.QueryRowContext(ctx, courseSelect+cond.where(), cond.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCourseRepository.%s: %w", op, err)
	}
	return c, nil
}

func (r *pgCourseRepository) List(ctx context.Context, f CourseFilter) ([]model.Course, int, error) {
	var cond conditions
	cond.visible(f.Visibility, "c.is_active")
	if f.AuthorID != "" {
		cond.add("c.author_id = ?", f.AuthorID)
	}
	if f.Search != "" {
		cond.add(`c.title ILIKE ? ESCAPE '\'`, containsPattern(f.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses c`+cond.where(), cond.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgCourseRepository.List count: %w", err)
	}

	query := courseSelect + cond.where() +
		fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", cond.next(), cond.next()+1)
	args := append(cond.args, limitArg(f.Limit), f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgCourseRepository.List query: %w", err)
	}
	defer rows.Close()

	courses, err := collectCourses(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("pgCourseRepository.List scan: %w", err)
	}
	return courses, total, nil
}

func (r *pgCourseRepository) ListByEnrolledUser(ctx context.Context, userID string) ([]model.Course, error) {
	query := courseSelect + `
	JOIN enrollments en ON en.course_id = c.id
	WHERE en.user_id = $1 AND c.is_active = TRUE
	ORDER BY en.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgCourseRepository.ListByEnrolledUser query: %w", err)
	}
	defer rows.Close()

	courses, err := collectCourses(rows)
	if err != nil {
		return nil, fmt.Errorf("pgCourseRepository.ListByEnrolledUser scan: %w", err)
	}
	return courses, nil
}

func collectCourses(rows *sql.Rows) ([]model.Course, error) {
	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

func (r *pgCourseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `UPDATE courses SET title = $1, is_active = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Title, c.IsActive, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgCourseRepository.Update: %w", err)
	}
	return nil
}

func (r *pgCourseRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE courses SET is_active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("pgCourseRepository.SetActive: %w", err)
	}
	return expectOneRow(res, "pgCourseRepository.SetActive")
}
