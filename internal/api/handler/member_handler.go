package handler

import (
	"net/http"

	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common"
	"dsa_arena/internal/domain/model"
	"dsa_arena/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type MemberHandler struct {
	memberService *service.MemberService
	log           *logger.Logger
}

func NewMemberHandler(ms *service.MemberService, log *logger.Logger) *MemberHandler {
	return &MemberHandler{memberService: ms, log: log}
}

type addMemberResponse struct {
	Message string        `json:"msg"`
	Member  *model.Member `json:"member"`
}

// RegisterRoutes expects to be mounted under /groups/{groupID}/members.
func (h *MemberHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listMembers)
	r.Post("/", h.addMember)
	r.Delete("/{memberID}", h.removeMember)
}

func (h *MemberHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	members, err := h.memberService.ListMembers(r.Context(), userID, groupID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) addMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.AddMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	member, err := h.memberService.AddMember(r.Context(), userID, groupID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, addMemberResponse{Message: "Member added successfully", Member: member})
}

func (h *MemberHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	memberID, err := pathID(r, "memberID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	err = h.memberService.RemoveMember(r.Context(), userID, groupID, memberID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Member removed successfully"})
}
