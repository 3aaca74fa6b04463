package service

import (
	"context"
	"errors"
	"fmt"

	"stepik_backend/internal/app/policy"
	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/domain/repository"
	"stepik_backend/internal/platform/logger"
)

type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	log         *logger.Logger
}

func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, log *logger.Logger) *UserService {
	return &UserService{userRepo: userRepo, profileRepo: profileRepo, log: log}
}

type UpdateProfileRequest struct {
	Bio         string  `json:"bio" validate:"max=2000"`
	Avatar      *string `json:"avatar,omitempty" validate:"omitempty,max=500"`
	Country     string  `json:"country" validate:"max=100"`
	PhoneNumber string  `json:"phone_number" validate:"max=20"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin mentor student"`
}

// ResolveActor returns the identity a token subject currently holds. The role
// always comes from storage, so role changes apply to tokens already issued.
func (s *UserService) ResolveActor(ctx context.Context, userID string) (model.Actor, error) {
	if !validID(userID) {
		return model.Actor{}, fmt.Errorf("malformed token subject: %w", common.ErrUnauthorized)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return model.Actor{}, fmt.Errorf("token subject no longer exists: %w", common.ErrUnauthorized)
	}
	if err != nil {
		return model.Actor{}, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	return model.Actor{UserID: user.ID, Role: user.Role}, nil
}

func (s *UserService) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

// GetProfile returns the actor's profile, or an empty one if none was saved yet.
func (s *UserService) GetProfile(ctx context.Context, actor model.Actor) (*model.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, actor.UserID)
	if errors.Is(err, common.ErrNotFound) {
		return &model.Profile{UserID: actor.UserID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor model.Actor, req UpdateProfileRequest) (*model.Profile, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	profile := &model.Profile{
		UserID:      actor.UserID,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

func (s *UserService) ChangeRole(ctx context.Context, actor model.Actor, userID string, req ChangeRoleRequest) (*model.User, error) {
	if err := policy.Authorize(actor, policy.ChangeRole, userID); err != nil {
		return nil, err
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if !validID(userID) {
		return nil, common.ErrNotFound
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	s.log.Info("user role changed", "user_id", userID, "role", string(role), "by", actor.UserID)
	return s.userRepo.FindByID(ctx, userID)
}
