// Package memory implements the repository interfaces over in-process maps.
// It mirrors the PostgreSQL implementations closely enough to back service
// and handler tests: unique constraints, visibility filters, derived counts
// and scoped submission reads behave the same way.
package memory

import (
	"sync"
	"time"

	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
)

type Store struct {
	mu sync.RWMutex

	users       []*model.User
	profiles    map[string]*model.Profile
	courses     []*model.Course
	enrollments []*model.Enrollment
	modules     []*model.Module
	tasks       []*model.Task
	ios         []*model.InputOutput
	submissions []*model.Submission

	clock time.Time
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*model.Profile),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// now returns a strictly increasing timestamp so ordering by creation time is stable.
// Callers hold s.mu.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) Users() repository.UserRepository             { return &userRepo{s} }
func (s *Store) Profiles() repository.ProfileRepository       { return &profileRepo{s} }
func (s *Store) Courses() repository.CourseRepository         { return &courseRepo{s} }
func (s *Store) Enrollments() repository.EnrollmentRepository { return &enrollmentRepo{s} }
func (s *Store) Modules() repository.ModuleRepository         { return &moduleRepo{s} }
func (s *Store) Tasks() repository.TaskRepository             { return &taskRepo{s} }
func (s *Store) Submissions() repository.SubmissionRepository { return &submissionRepo{s} }

func (s *Store) userByID(id string) *model.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) courseByID(id string) *model.Course {
	for _, c := range s.courses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) moduleByID(id string) *model.Module {
	for _, m := range s.modules {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Store) taskByID(id string) *model.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
