package memory

import (
	"context"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	r.s.users = append(r.s.users, &stored)
	return nil
}

func (r *userRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *userRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *userRepo) UpdateRole(_ context.Context, id string, role model.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.userByID(id)
	if u == nil {
		return common.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = r.s.now()
	return nil
}

type profileRepo struct{ s *Store }

func (r *profileRepo) Get(_ context.Context, userID string) (*model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *profileRepo) Upsert(_ context.Context, p *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.UpdatedAt = r.s.now()
	stored := *p
	r.s.profiles[p.UserID] = &stored
	return nil
}
