package handler

import (
	"net/http"

	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common"
	"dsa_arena/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	problemService *service.ProblemService
	log            *logger.Logger
}

func NewProblemHandler(ps *service.ProblemService, log *logger.Logger) *ProblemHandler {
	return &ProblemHandler{problemService: ps, log: log}
}

// RegisterRoutes mounts /problems/{problemID}.
func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{problemID}", h.getProblem)
	r.Put("/{problemID}", h.updateProblem)
	r.Delete("/{problemID}", h.deleteProblem)
}

// RegisterGroupRoutes expects to be mounted under /groups/{groupID}/problems.
func (h *ProblemHandler) RegisterGroupRoutes(r chi.Router) {
	r.Get("/", h.listGroupProblems)
	r.Post("/", h.createProblem)
}

func (h *ProblemHandler) createProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.CreateProblemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	problem, err := h.problemService.CreateProblem(r.Context(), userID, groupID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, problem)
}

func (h *ProblemHandler) listGroupProblems(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	groupID, err := pathID(r, "groupID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	problems, err := h.problemService.ListGroupProblems(r.Context(), userID, groupID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	problemID, err := pathID(r, "problemID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	problem, err := h.problemService.GetProblem(r.Context(), userID, problemID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) updateProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.UpdateProblemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	problemID, err := pathID(r, "problemID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	problem, err := h.problemService.UpdateProblem(r.Context(), userID, problemID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) deleteProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	problemID, err := pathID(r, "problemID")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err = h.problemService.DeleteProblem(r.Context(), userID, problemID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Problem deleted successfully"})
}
