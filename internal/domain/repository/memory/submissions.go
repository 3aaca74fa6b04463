package memory

import (
	"context"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
)

type submissionRepo struct{ s *Store }

// submissionView fills the fields the PostgreSQL implementation joins in.
func (s *Store) submissionView(sub *model.Submission) model.Submission {
	out := *sub
	out.User = s.userByID(sub.UserID).Brief()
	if t := s.taskByID(sub.TaskID); t != nil {
		out.TaskTitle = t.Title
		if m := s.moduleByID(t.ModuleID); m != nil {
			out.CourseID = m.CourseID
			if c := s.courseByID(m.CourseID); c != nil {
				out.CourseAuthorID = c.AuthorID
			}
		}
	}
	return out
}

func (r *submissionRepo) Create(_ context.Context, sub *model.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	sub.CreatedAt, sub.UpdatedAt = now, now
	stored := *sub
	stored.User, stored.Task = nil, nil
	r.s.submissions = append(r.s.submissions, &stored)
	return nil
}

func (r *submissionRepo) FindByID(_ context.Context, id string, scope model.SubmissionScope) (*model.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sub := range r.s.submissions {
		if sub.ID != id {
			continue
		}
		view := r.s.submissionView(sub)
		if !scope.Admits(&view) {
			break
		}
		return &view, nil
	}
	return nil, common.ErrNotFound
}

func (r *submissionRepo) List(_ context.Context, f repository.SubmissionFilter) ([]model.Submission, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := []model.Submission{}
	for i := len(r.s.submissions) - 1; i >= 0; i-- {
		view := r.s.submissionView(r.s.submissions[i])
		if !f.Scope.Admits(&view) {
			continue
		}
		if f.TaskID != "" && view.TaskID != f.TaskID {
			continue
		}
		if f.Status != "" && view.Status != f.Status {
			continue
		}
		matched = append(matched, view)
	}
	return page(matched, f.Limit, f.Offset), len(matched), nil
}

func (r *submissionRepo) UpdateStatus(_ context.Context, sub *model.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.submissions {
		if stored.ID == sub.ID {
			stored.Status = sub.Status
			stored.UpdatedAt = r.s.now()
			sub.UpdatedAt = stored.UpdatedAt
			return nil
		}
	}
	return common.ErrNotFound
}
