package handler

import (
	"net/http"

	"stepik_backend/internal/app/service"
	"stepik_backend/internal/common"
	"stepik_backend/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type ModuleHandler struct {
	moduleService *service.ModuleService
	log           *logger.Logger
}

func NewModuleHandler(moduleService *service.ModuleService, log *logger.Logger) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, log: log}
}

func (h *ModuleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listModules)
	r.Post("/", h.createModule)
	r.Get("/{moduleID}", h.getModule)
	r.Put("/{moduleID}", h.updateModule)
	r.Delete("/{moduleID}", h.deleteModule)
}

func (h *ModuleHandler) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.moduleService.List(r.Context(), actorOf(r), r.URL.Query().Get("course"), includeInactive(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, modules)
}

func (h *ModuleHandler) createModule(w http.ResponseWriter, r *http.Request) {
	var req service.CreateModuleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	module, err := h.moduleService.Create(r.Context(), actorOf(r), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, module)
}

func (h *ModuleHandler) getModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.moduleService.Get(r.Context(), actorOf(r), chi.URLParam(r, "moduleID"), includeInactive(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) updateModule(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateModuleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	module, err := h.moduleService.Update(r.Context(), actorOf(r), chi.URLParam(r, "moduleID"), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) deleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.moduleService.Deactivate(r.Context(), actorOf(r), chi.URLParam(r, "moduleID")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	noContent(w)
}
