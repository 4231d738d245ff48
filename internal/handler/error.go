package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/aidar/invento-api/internal/domain"
)

// ErrorResponder преобразует ошибки сервисов в HTTP ответы.
// Нулевой *ErrorResponder пишет в slog.Default и скрывает детали ошибок
type ErrorResponder struct {
	logger *slog.Logger
	// Показывать ли текст внутренних ошибок клиенту (только APP_ENV=development)
	exposeDetails bool
}

// NewErrorResponder создает ErrorResponder
func NewErrorResponder(logger *slog.Logger, development bool) *ErrorResponder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorResponder{logger: logger, exposeDetails: development}
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	RespondWithJSON(w, r, statusCode, Response{
		Success: false,
		Message: message,
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func (e *ErrorResponder) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, r, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, domain.ErrDuplicateTeamName):
		RespondWithError(w, r, http.StatusBadRequest, "Team name already exists. Please choose a different name.")
	case errors.Is(err, domain.ErrDuplicateMember):
		RespondWithError(w, r, http.StatusBadRequest, "One or more email addresses are already registered with another team")
	case errors.Is(err, domain.ErrDuplicateAdmin):
		RespondWithError(w, r, http.StatusBadRequest, "Admin with this email already exists")
	case errors.Is(err, domain.ErrWeakPassword):
		RespondWithError(w, r, http.StatusBadRequest, "Password must be at least 6 characters")
	case errors.Is(err, domain.ErrInvalidEmail):
		RespondWithError(w, r, http.StatusBadRequest, "Please provide a valid email")
	case errors.Is(err, domain.ErrTeamNotFound):
		RespondWithError(w, r, http.StatusNotFound, "Team not found")
	case errors.Is(err, domain.ErrAdminNotFound):
		RespondWithError(w, r, http.StatusNotFound, "Admin not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrAccountDeactivated):
		RespondWithError(w, r, http.StatusUnauthorized, "Account is deactivated")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, "Not authorized, token failed")
	case errors.Is(err, domain.ErrTooManyAttempts):
		RespondWithError(w, r, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
	default:
		e.respondInternal(w, r, err)
	}
}

// respondInternal логирует ошибку и скрывает ее текст вне development режима
func (e *ErrorResponder) respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	logger := slog.Default()
	if e != nil && e.logger != nil {
		logger = e.logger
	}
	logger.ErrorContext(r.Context(), "Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)

	resp := Response{Success: false, Message: "Server error"}
	if e != nil && e.exposeDetails {
		resp.Error = err.Error()
	}
	RespondWithJSON(w, r, http.StatusInternalServerError, resp)
}
