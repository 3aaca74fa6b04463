package service

import (
	"context"
	"errors"
	"testing"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

func TestSignupLoginRefreshLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signed, err := f.auth.Signup(ctx, SignupRequest{Username: "alice", Email: "Alice@Example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if signed.User.Role != model.RoleStudent {
		t.Fatalf("default role: got=%q want=%q", signed.User.Role, model.RoleStudent)
	}
	if signed.User.HashedPassword != "" {
		t.Fatal("password hash leaked in response")
	}
	if signed.AccessToken == "" || signed.RefreshToken == "" {
		t.Fatalf("tokens missing: %+v", signed)
	}

	for _, login := range []string{"alice", "alice@example.com"} {
		if _, err := f.auth.Login(ctx, LoginRequest{LoginField: login, Password: "s3cretpass"}); err != nil {
			t.Fatalf("login with %q: %v", login, err)
		}
	}
	if _, err := f.auth.Login(ctx, LoginRequest{LoginField: "alice", Password: "wrong-pass"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("bad password: got=%v want=%v", err, common.ErrUnauthorized)
	}

	rotated, err := f.auth.Refresh(ctx, RefreshRequest{RefreshToken: signed.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == signed.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}
	if _, err := f.auth.Refresh(ctx, RefreshRequest{RefreshToken: signed.RefreshToken}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("reused refresh token: got=%v want=%v", err, common.ErrUnauthorized)
	}

	if err := f.auth.Logout(ctx, RefreshRequest{RefreshToken: rotated.RefreshToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.auth.Refresh(ctx, RefreshRequest{RefreshToken: rotated.RefreshToken}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("refresh after logout: got=%v want=%v", err, common.ErrUnauthorized)
	}
}

func TestSignupValidationAndConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Signup(ctx, SignupRequest{Username: "bob", Email: "not-an-email", Password: "s3cretpass"}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("bad email: got=%v want=%v", err, common.ErrValidation)
	}
	if _, err := f.auth.Signup(ctx, SignupRequest{Username: "bob", Email: "bob@example.com", Password: "s3cretpass"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, err := f.auth.Signup(ctx, SignupRequest{Username: "bob", Email: "bob2@example.com", Password: "s3cretpass"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("duplicate: got=%v want=%v", err, common.ErrConflict)
	}
}

func TestProfileIsCreatedLazily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.actor(t, model.RoleStudent)

	empty, err := f.users.GetProfile(ctx, student)
	if err != nil {
		t.Fatalf("get empty profile: %v", err)
	}
	if empty.UserID != student.UserID || empty.Bio != "" {
		t.Fatalf("empty profile: %+v", empty)
	}

	avatar := "avatars/me.png"
	if _, err := f.users.UpdateProfile(ctx, student, UpdateProfileRequest{Bio: "hi", Avatar: &avatar, Country: "KZ"}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	got, err := f.users.GetProfile(ctx, student)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Bio != "hi" || got.Avatar == nil || *got.Avatar != avatar {
		t.Fatalf("profile: %+v", got)
	}
}

func TestChangeRoleIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, model.RoleAdmin)
	mentor := f.actor(t, model.RoleMentor)
	student := f.actor(t, model.RoleStudent)

	if _, err := f.users.ChangeRole(ctx, mentor, student.UserID, ChangeRoleRequest{Role: "admin"}); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("mentor: got=%v want=%v", err, common.ErrForbidden)
	}
	if _, err := f.users.ChangeRole(ctx, student, student.UserID, ChangeRoleRequest{Role: "admin"}); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("self-promotion: got=%v want=%v", err, common.ErrForbidden)
	}
	if _, err := f.users.ChangeRole(ctx, admin, student.UserID, ChangeRoleRequest{Role: "instructor"}); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("unknown role: got=%v want=%v", err, common.ErrValidation)
	}

	got, err := f.users.ChangeRole(ctx, admin, student.UserID, ChangeRoleRequest{Role: "mentor"})
	if err != nil {
		t.Fatalf("admin change: %v", err)
	}
	if got.Role != model.RoleMentor {
		t.Fatalf("role: got=%q want=%q", got.Role, model.RoleMentor)
	}
}
