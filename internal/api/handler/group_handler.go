package handler

import (
	"net/http"

	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common"
	"dsa_arena/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type GroupHandler struct {
	groupService *service.GroupService
	log          *logger.Logger
}

func NewGroupHandler(gs *service.GroupService, log *logger.Logger) *GroupHandler {
	return &GroupHandler{groupService: gs, log: log}
}

func (h *GroupHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listGroups)              // GET /api/groups
	r.Post("/", h.createGroup)            // POST /api/groups
	r.Get("/{groupID}", h.getGroup)       // GET /api/groups/{id}
	r.Delete("/{groupID}", h.deleteGroup) // DELETE /api/groups/{id}
}

func (h *GroupHandler) listGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groups, err := h.groupService.ListGroups(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) createGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.CreateGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	group, err := h.groupService.CreateGroup(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) getGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	group, err := h.groupService.GetGroup(r.Context(), userID, groupID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err = h.groupService.DeleteGroup(r.Context(), userID, groupID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Group deleted successfully"})
}
