package handler

import (
	"net/http"

	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common"
	"dsa_arena/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	progressService *service.ProgressService
	log             *logger.Logger
}

func NewProgressHandler(ps *service.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: ps, log: log}
}

func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Get("/my-problems", h.myProblems)
	r.Get("/leaderboard/{groupID}", h.leaderboard)
	r.Get("/{problemID}", h.getProgress)
	r.Put("/{problemID}", h.updateProgress)
}

func (h *ProgressHandler) getProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	problemID, err := pathID(r, "problemID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	progress, err := h.progressService.GetProgress(r.Context(), userID, problemID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) updateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.UpdateProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	problemID, err := pathID(r, "problemID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	progress, err := h.progressService.SetProgress(r.Context(), userID, problemID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) myProblems(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	problems, err := h.progressService.MyProblems(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}

func (h *ProgressHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	entries, err := h.progressService.Leaderboard(r.Context(), userID, groupID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
