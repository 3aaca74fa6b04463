package memory

import (
	"context"
	"fmt"
	"strings"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
)

type courseRepo struct{ s *Store }

// courseView returns a copy of c with the joined and derived fields filled.
func (s *Store) courseView(c *model.Course) model.Course {
	out := *c
	out.Author = s.userByID(c.AuthorID).Brief()
	out.ModulesCount, out.EnrollmentCount = 0, 0
	for _, m := range s.modules {
		if m.CourseID == c.ID && m.IsActive {
			out.ModulesCount++
		}
	}
	for _, e := range s.enrollments {
		if e.CourseID == c.ID {
			out.EnrollmentCount++
		}
	}
	return out
}

func (r *courseRepo) Create(_ context.Context, c *model.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.courses {
		if existing.Slug == c.Slug {
			return fmt.Errorf("course with this slug already exists: %w", common.ErrConflict)
		}
	}
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	stored := *c
	stored.Modules, stored.Enrollments, stored.Author = nil, nil, nil
	r.s.courses = append(r.s.courses, &stored)
	return nil
}

func (r *courseRepo) findOne(match func(*model.Course) bool, vis model.Visibility) (*model.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.courses {
		if match(c) && vis.Admits(c.IsActive) {
			out := r.s.courseView(c)
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *courseRepo) FindByID(_ context.Context, id string, vis model.Visibility) (*model.Course, error) {
	return r.findOne(func(c *model.Course) bool { return c.ID == id }, vis)
}

func (r *courseRepo) FindBySlug(_ context.Context, slug string, vis model.Visibility) (*model.Course, error) {
	return r.findOne(func(c *model.Course) bool { return c.Slug == slug }, vis)
}

func (r *courseRepo) List(_ context.Context, f repository.CourseFilter) ([]model.Course, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	matched := []model.Course{}
	// Newest first.
	for i := len(r.s.courses) - 1; i >= 0; i-- {
		c := r.s.courses[i]
		if !f.Visibility.Admits(c.IsActive) {
			continue
		}
		if f.AuthorID != "" && c.AuthorID != f.AuthorID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Title), search) {
			continue
		}
		matched = append(matched, r.s.courseView(c))
	}
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

func (r *courseRepo) ListByEnrolledUser(_ context.Context, userID string) ([]model.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	courses := []model.Course{}
	for i := len(r.s.enrollments) - 1; i >= 0; i-- {
		e := r.s.enrollments[i]
		if e.UserID != userID {
			continue
		}
		if c := r.s.courseByID(e.CourseID); c != nil && c.IsActive {
			courses = append(courses, r.s.courseView(c))
		}
	}
	return courses, nil
}

func (r *courseRepo) Update(_ context.Context, c *model.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.courseByID(c.ID)
	if stored == nil {
		return common.ErrNotFound
	}
	stored.Title = c.Title
	stored.IsActive = c.IsActive
	stored.UpdatedAt = r.s.now()
	c.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *courseRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.courseByID(id)
	if stored == nil {
		return common.ErrNotFound
	}
	stored.IsActive = active
	stored.UpdatedAt = r.s.now()
	return nil
}

type enrollmentRepo struct{ s *Store }

func (r *enrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return fmt.Errorf("enrollment already exists: %w", common.ErrConflict)
		}
	}
	e.CreatedAt = r.s.now()
	stored := *e
	stored.User, stored.Course = nil, nil
	r.s.enrollments = append(r.s.enrollments, &stored)
	return nil
}

func (r *enrollmentRepo) Delete(_ context.Context, userID, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			r.s.enrollments = append(r.s.enrollments[:i], r.s.enrollments[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *enrollmentRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) enrollmentView(e *model.Enrollment) model.Enrollment {
	out := *e
	out.User = s.userByID(e.UserID).Brief()
	if c := s.courseByID(e.CourseID); c != nil {
		brief := *c
		out.Course = &brief
	}
	return out
}

func (r *enrollmentRepo) ListByUser(_ context.Context, userID string) ([]model.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Enrollment{}
	for i := len(r.s.enrollments) - 1; i >= 0; i-- {
		if e := r.s.enrollments[i]; e.UserID == userID {
			out = append(out, r.s.enrollmentView(e))
		}
	}
	return out, nil
}

func (r *enrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Enrollment{}
	for _, e := range r.s.enrollments {
		if e.CourseID == courseID {
			out = append(out, r.s.enrollmentView(e))
		}
	}
	return out, nil
}
