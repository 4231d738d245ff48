package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/metrics"
	"github.com/aidar/invento-api/internal/repository"
)

// Email delivery status reported back to the registering team
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// Notifier sends registration confirmations for a stored team
type Notifier interface {
	Dispatch(ctx context.Context, team *domain.Team) (*NotificationReport, error)
}

// RegistrationResult is the outcome of a successful registration
type RegistrationResult struct {
	Team         *domain.Team
	EmailStatus  string
	EmailsSent   int
	EmailsFailed int
	EmailResults []NotificationResult
}

// TeamService handles business logic for teams
type TeamService struct {
	teamRepo repository.TeamRepository
	notifier Notifier
	policy   domain.LeaderPolicy
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewTeamService creates a new TeamService
func NewTeamService(
	teamRepo repository.TeamRepository,
	notifier Notifier,
	policy domain.LeaderPolicy,
	logger *slog.Logger,
	m *metrics.Metrics,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		teamRepo: teamRepo,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Register validates a submission, stores the team and notifies every member.
// Uniqueness of the team name and member emails is enforced by the repository on insert.
// Notification problems never undo the registration: they only degrade the email status.
func (s *TeamService) Register(ctx context.Context, sub *domain.TeamSubmission) (*RegistrationResult, error) {
	if err := sub.Validate(s.policy); err != nil {
		s.metrics.IncRegistrationRejected("validation")
		return nil, err
	}

	team := sub.BuildTeam(uuid.NewString(), s.now().UTC())

	// The name is checked before any email, including emails repeated inside the team
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateTeamName):
			s.metrics.IncRegistrationRejected("duplicate_team_name")
		case errors.Is(err, domain.ErrDuplicateMember):
			s.metrics.IncRegistrationRejected("duplicate_member")
		}
		return nil, err
	}

	s.metrics.IncTeamRegistered()
	s.logger.InfoContext(ctx, "Team registered",
		"team_id", team.ID,
		"team_name", team.TeamName,
		"members", team.Size(),
	)

	result := &RegistrationResult{Team: team, EmailStatus: EmailStatusSent}

	// The team is already stored, a cancelled request must not cut the mail off halfway
	report, err := s.notifier.Dispatch(context.WithoutCancel(ctx), team)
	if err != nil {
		s.logger.ErrorContext(ctx, "Confirmation emails were not sent",
			"team_id", team.ID,
			"error", err,
		)
		result.EmailStatus = EmailStatusFailed
		return result, nil
	}

	result.EmailsSent = report.TotalSent
	result.EmailsFailed = report.TotalFailed
	result.EmailResults = report.Results
	if report.TotalSent == 0 && report.TotalFailed > 0 {
		result.EmailStatus = EmailStatusFailed
	}

	return result, nil
}

// GetTeam retrieves a team with its screenshot
func (s *TeamService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	if !isTeamID(id) {
		return nil, domain.ErrTeamNotFound
	}
	return s.teamRepo.GetByID(ctx, id)
}

// GetTeamByName retrieves a team by its exact name
func (s *TeamService) GetTeamByName(ctx context.Context, teamName string) (*domain.Team, error) {
	return s.teamRepo.GetByName(ctx, teamName)
}

// ListTeams returns all teams without screenshots
func (s *TeamService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.List(ctx)
}

// GetScreenshot returns the payment screenshot of one team
func (s *TeamService) GetScreenshot(ctx context.Context, id string) (*domain.TeamScreenshot, error) {
	if !isTeamID(id) {
		return nil, domain.ErrTeamNotFound
	}
	return s.teamRepo.GetScreenshot(ctx, id)
}

// UpdateTeam applies an admin patch and stamps the update time
func (s *TeamService) UpdateTeam(ctx context.Context, id string, patch *domain.TeamPatch) (*domain.Team, error) {
	if !isTeamID(id) {
		return nil, domain.ErrTeamNotFound
	}

	if patch.TeamName != nil && strings.TrimSpace(*patch.TeamName) == "" {
		return nil, domain.NewValidationError("team_name", "Team name cannot be empty")
	}
	if patch.CollegeName != nil && strings.TrimSpace(*patch.CollegeName) == "" {
		return nil, domain.NewValidationError("college_name", "College name cannot be empty")
	}
	if patch.Status != nil && strings.TrimSpace(string(*patch.Status)) == "" {
		return nil, domain.NewValidationError("status", "Status cannot be empty")
	}
	if patch.Members != nil {
		members, err := domain.NormalizeMembers(*patch.Members)
		if err != nil {
			return nil, err
		}
		if _, dup := domain.DuplicateEmail(members); dup {
			return nil, domain.ErrDuplicateMember
		}
		patch.Members = &members
	}

	team, err := s.teamRepo.Update(ctx, id, patch, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Team updated", "team_id", id)
	return team, nil
}

// DeleteTeam removes a team permanently
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	if !isTeamID(id) {
		return domain.ErrTeamNotFound
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Team deleted", "team_id", id)
	return nil
}

func isTeamID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
