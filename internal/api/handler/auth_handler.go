package handler

import (
	"net/http"

	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common"
	"dsa_arena/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *logger.Logger
}

func NewAuthHandler(authService *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// RegisterRoutes mounts the public credential endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
}

// RegisterProtectedRoutes mounts endpoints that need a verified token.
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
