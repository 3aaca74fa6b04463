package middleware

import (
	"context"
	"errors"
	"net/http"

	"stepik_backend/internal/common"
	"stepik_backend/internal/common/security"
	"stepik_backend/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	actorCtxKey  contextKey = "actor"
	holderCtxKey contextKey = "actorHolder"
)

type actorHolder struct {
	actor model.Actor
}

func withActorHolder(ctx context.Context, h *actorHolder) context.Context {
	return context.WithValue(ctx, holderCtxKey, h)
}

// ActorResolver maps a token subject to its current identity.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (model.Actor, error)
}

// Authenticator rejects requests without a valid bearer token and stores the
// subject's current identity in the request context. The token only supplies
// the user id; the role is read through resolver on every request.
// It expects jwtauth.Verifier upstream.
func Authenticator(resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}
			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			actor, err := resolver.ResolveActor(r.Context(), userID)
			if err != nil {
				common.RespondWithAppError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole admits only actors holding one of roles. Use after Authenticator.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			common.RespondWithError(w, http.StatusForbidden, "Insufficient role")
		})
	}
}

func WithActor(ctx context.Context, actor model.Actor) context.Context {
	if h, ok := ctx.Value(holderCtxKey).(*actorHolder); ok {
		h.actor = actor
	}
	return context.WithValue(ctx, actorCtxKey, actor)
}

func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(model.Actor)
	return actor, ok
}
