package handler

import (
	"net/http"

	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common"
	"dsa_arena/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves the caller's own profile and dashboard.
type UserHandler struct {
	userService      *service.UserService
	dashboardService *service.DashboardService
	log              *logger.Logger
}

func NewUserHandler(us *service.UserService, ds *service.DashboardService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: us, dashboardService: ds, log: log}
}

// RegisterRoutes mounts /user/profile.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.getProfile)
	r.Put("/profile", h.updateProfile)
}

// RegisterDashboardRoutes mounts /dashboard/stats.
func (h *UserHandler) RegisterDashboardRoutes(r chi.Router) {
	r.Get("/stats", h.dashboardStats)
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req service.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	user, err := h.userService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	dash, err := h.dashboardService.Stats(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, dash)
}
