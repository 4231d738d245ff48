package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/service"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService *service.TeamService
	errs        *ErrorResponder
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService *service.TeamService, errs *ErrorResponder) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		errs:        errs,
	}
}

// RegisterTeamResponse представляет данные ответа на регистрацию команды
type RegisterTeamResponse struct {
	Team         *domain.Team                 `json:"team"`
	EmailStatus  string                       `json:"emailStatus"`
	EmailsSent   int                          `json:"emailsSent"`
	EmailsFailed int                          `json:"emailsFailed"`
	EmailResults []service.NotificationResult `json:"emailResults,omitempty"`
}

// RegisterTeam обрабатывает POST /api/teams/register (публичный)
func (h *TeamHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req domain.TeamSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.teamService.Register(r.Context(), &req)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	message := "Team registered successfully! Confirmation emails sent to all members."
	if result.EmailStatus == service.EmailStatusFailed {
		message = "Team registered successfully, but email notification failed. Please contact support."
	}

	RespondWithData(w, r, http.StatusCreated, message, RegisterTeamResponse{
		Team:         result.Team,
		EmailStatus:  result.EmailStatus,
		EmailsSent:   result.EmailsSent,
		EmailsFailed: result.EmailsFailed,
		EmailResults: result.EmailResults,
	})
}

// ListTeams обрабатывает GET /api/teams (без скриншотов)
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithList(w, r, teams, len(teams))
}

// GetTeam обрабатывает GET /api/teams/{id}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "", team)
}

// GetTeamByName обрабатывает GET /api/teams/name/{teamName}
func (h *TeamHandler) GetTeamByName(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeamByName(r.Context(), chi.URLParam(r, "teamName"))
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "", team)
}

// GetScreenshot обрабатывает GET /api/teams/{id}/screenshot
func (h *TeamHandler) GetScreenshot(w http.ResponseWriter, r *http.Request) {
	screenshot, err := h.teamService.GetScreenshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "", screenshot)
}

// UpdateTeam обрабатывает PUT /api/teams/{id}
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var patch domain.TeamPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), chi.URLParam(r, "id"), &patch)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "Team updated successfully", team)
}

// DeleteTeam обрабатывает DELETE /api/teams/{id}
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.teamService.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "Team deleted successfully", nil)
}
