package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/mailer"
	"github.com/aidar/invento-api/internal/metrics"
)

// NotificationResult is the delivery outcome for one team member
type NotificationResult struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NotificationReport aggregates per-recipient outcomes of one dispatch
type NotificationReport struct {
	Results     []NotificationResult `json:"results"`
	TotalSent   int                  `json:"totalSent"`
	TotalFailed int                  `json:"totalFailed"`
}

// NotificationService sends registration confirmations to team members
type NotificationService struct {
	sender  mailer.Sender
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewNotificationService creates a new NotificationService.
// A nil sender means mail is not configured and every dispatch fails as a whole.
func NewNotificationService(sender mailer.Sender, logger *slog.Logger, m *metrics.Metrics) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		sender:  sender,
		logger:  logger,
		metrics: m,
	}
}

// MemberRole returns the role label used in the confirmation email
func MemberRole(position int) string {
	if position == 0 {
		return "Team Leader"
	}
	return fmt.Sprintf("Team Member %d", position+1)
}

// Dispatch sends one confirmation per member concurrently and waits for all of them.
// A failed delivery is recorded in the report and never stops the other sends;
// an error is returned only when the dispatch cannot run at all.
func (s *NotificationService) Dispatch(ctx context.Context, team *domain.Team) (*NotificationReport, error) {
	if s.sender == nil {
		return nil, fmt.Errorf("%w: mail transport is not configured", domain.ErrNotificationDelivery)
	}

	// Render everything up front: a broken template is an infrastructure failure
	messages := make([]mailer.Message, len(team.Members))
	for i, member := range team.Members {
		html, err := mailer.RenderRegistration(mailer.RegistrationData{
			MemberName:  member.Name,
			TeamName:    team.TeamName,
			CollegeName: team.CollegeName,
			Role:        MemberRole(i),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotificationDelivery, err)
		}
		messages[i] = mailer.Message{
			To:      member.Email,
			Subject: mailer.RegistrationSubject,
			HTML:    html,
		}
	}

	start := time.Now()

	// Each goroutine owns its slot in results, so no locking is needed
	results := make([]NotificationResult, len(messages))
	var g errgroup.Group
	for i, msg := range messages {
		g.Go(func() error {
			result := NotificationResult{Email: msg.To, Role: MemberRole(i), Success: true}
			if err := s.sender.Send(ctx, msg); err != nil {
				result.Success = false
				result.Error = err.Error()
				s.logger.WarnContext(ctx, "Failed to send confirmation email",
					"team_id", team.ID,
					"email", msg.To,
					"error", err,
				)
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	report := summarize(results)
	s.metrics.ObserveDispatch(time.Since(start).Seconds())
	s.metrics.AddEmails(report.TotalSent, report.TotalFailed)

	return report, nil
}

func summarize(results []NotificationResult) *NotificationReport {
	report := &NotificationReport{Results: results}
	for _, r := range results {
		if r.Success {
			report.TotalSent++
		} else {
			report.TotalFailed++
		}
	}
	return report
}
