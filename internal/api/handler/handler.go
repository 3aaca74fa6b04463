package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stepik_backend/internal/api/middleware"
	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/platform/logger"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// ActionResponse is the body of enroll and update_status.
type ActionResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Enrollment *model.Enrollment `json:"enrollment,omitempty"`
	Submission *model.Submission `json:"submission,omitempty"`
}

// maxBodyBytes bounds every JSON request body, code_student included.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("body exceeds %d bytes: %w", tooLarge.Limit, common.ErrTooLarge)
		}
		return fmt.Errorf("invalid request payload: %v: %w", err, common.ErrBadRequest)
	}
	return nil
}

// respondError writes err as JSON; server errors are logged with the request id.
func respondError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	if common.HTTPStatusFromError(err) >= http.StatusInternalServerError {
		log.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chiMiddleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	common.RespondWithAppError(w, err)
}

// actorOf returns the authenticated actor; routes are mounted behind Authenticator.
func actorOf(r *http.Request) model.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor
}

func includeInactive(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("include_inactive"))
	return err == nil && v
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
