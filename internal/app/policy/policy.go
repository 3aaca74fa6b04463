// Package policy decides what an actor may do. Every decision switches over
// the closed set of roles; an unknown role is always denied.
package policy

import (
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type Action string

const (
	CreateCourse    Action = "course:create"
	ModifyCourse    Action = "course:modify" // course itself and its modules, tasks, input/outputs
	GradeSubmission Action = "submission:grade"
	ChangeRole      Action = "user:change_role"
)

// Authorize returns nil when actor may perform action on a resource owned by ownerID.
// For ModifyCourse and GradeSubmission ownerID is the course author; for ChangeRole
// it is the target user. Denials wrap common.ErrForbidden.
func Authorize(actor model.Actor, action Action, ownerID string) error {
	if allowed(actor, action, ownerID) {
		return nil
	}
	return fmt.Errorf("%s not permitted for role %q: %w", action, actor.Role, common.ErrForbidden)
}

func allowed(actor model.Actor, action Action, ownerID string) bool {
	if actor.UserID == "" {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		if action == ChangeRole {
			return !actor.Is(ownerID)
		}
		return true
	case model.RoleMentor:
		switch action {
		case CreateCourse:
			return true
		case ModifyCourse, GradeSubmission:
			return actor.Is(ownerID)
		default:
			return false
		}
	case model.RoleStudent:
		return false
	default:
		return false
	}
}

// SubmissionScope narrows submission reads to what actor may see:
// students their own, mentors those on courses they author, admins all.
func SubmissionScope(actor model.Actor) model.SubmissionScope {
	switch actor.Role {
	case model.RoleAdmin:
		return model.SubmissionScope{}
	case model.RoleMentor:
		return model.SubmissionScope{CourseAuthorID: actor.UserID}
	case model.RoleStudent:
		return model.SubmissionScope{UserID: actor.UserID}
	default:
		return model.SubmissionScope{UserID: actor.UserID}
	}
}

// Visibility returns the soft-delete filter for actor. Only admins may opt in
// to inactive rows.
func Visibility(actor model.Actor, includeInactive bool) model.Visibility {
	if includeInactive && actor.Role == model.RoleAdmin {
		return model.IncludeInactive
	}
	return model.ActiveOnly
}
