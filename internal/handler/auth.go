package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aidar/invento-api/internal/middleware"
	"github.com/aidar/invento-api/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации администраторов
type AuthHandler struct {
	authService *service.AuthService
	errs        *ErrorResponder
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService, errs *ErrorResponder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		errs:        errs,
	}
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest представляет тело запроса на регистрацию администратора
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdateProfileRequest представляет тело запроса на обновление профиля
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "Login successful", result)
}

// Register обрабатывает POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterAdminInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, "Admin registered successfully", result)
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, err := h.authService.GetProfile(r.Context(), middleware.GetAdminIDFromContext(r.Context()))
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "", admin)
}

// UpdateProfile обрабатывает PUT /api/auth/update
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.authService.UpdateProfile(r.Context(), middleware.GetAdminIDFromContext(r.Context()), service.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "Profile updated successfully", admin)
}
