package handler

import (
	"net/http"

	"stepik_backend/internal/api/middleware"
	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
	"stepik_backend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	log         *logger.Logger
}

func NewUserHandler(userService *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Get("/me/profile", h.getProfile)
	r.Put("/me/profile", h.updateProfile)
	r.With(middleware.RequireRole(model.RoleAdmin)).Put("/{userID}/role", h.changeRole)
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Me(r.Context(), actorOf(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetProfile(r.Context(), actorOf(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	profile, err := h.userService.UpdateProfile(r.Context(), actorOf(r), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) changeRole(w http.ResponseWriter, r *http.Request) {
	var req service.ChangeRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	user, err := h.userService.ChangeRole(r.Context(), actorOf(r), chi.URLParam(r, "userID"), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
