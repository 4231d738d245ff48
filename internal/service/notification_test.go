package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/mailer"
	"github.com/aidar/invento-api/internal/mailer/mocks"
	"github.com/aidar/invento-api/internal/metrics"
)

type NotificationServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	sender  *mocks.MockSender
	service *NotificationService
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sender = mocks.NewMockSender(s.ctrl)
	s.service = NewNotificationService(s.sender, nil, metrics.New())
}

func (s *NotificationServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func teamOfSize(n int) *domain.Team {
	emails := []string{"lead@example.com", "m2@example.com", "m3@example.com", "m4@example.com", "m5@example.com"}
	members := make([]domain.Member, n)
	for i := range members {
		members[i] = domain.Member{Name: "Member", Email: emails[i]}
	}
	return &domain.Team{
		ID:           "7d8c8a43-8a7e-4d8f-9d1b-1c1f3a1d2b11",
		TeamName:     "Night Owls",
		CollegeName:  "North College",
		Members:      members,
		Status:       domain.StatusRegistered,
		RegisteredAt: time.Now(),
	}
}

func (s *NotificationServiceSuite) TestDispatchAllSucceed() {
	team := teamOfSize(3)
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	report, err := s.service.Dispatch(context.Background(), team)
	s.Require().NoError(err)
	s.Equal(3, report.TotalSent)
	s.Equal(0, report.TotalFailed)
	s.Require().Len(report.Results, 3)
	s.Equal("Team Leader", report.Results[0].Role)
	s.Equal("Team Member 2", report.Results[1].Role)
	s.Equal("Team Member 3", report.Results[2].Role)
}

func (s *NotificationServiceSuite) TestDispatchPartialFailure() {
	team := teamOfSize(5)

	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg mailer.Message) error {
			if msg.To == "m4@example.com" {
				return errors.New("mailbox unavailable")
			}
			return nil
		},
	).Times(5)

	report, err := s.service.Dispatch(context.Background(), team)
	s.Require().NoError(err)
	s.Equal(4, report.TotalSent)
	s.Equal(1, report.TotalFailed)
	s.Equal(5, report.TotalSent+report.TotalFailed)

	failed := report.Results[3]
	s.Equal("m4@example.com", failed.Email)
	s.Equal("Team Member 4", failed.Role)
	s.False(failed.Success)
	s.Equal("mailbox unavailable", failed.Error)
}

func (s *NotificationServiceSuite) TestDispatchRendersMessagePerMember() {
	team := teamOfSize(1)

	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg mailer.Message) error {
			s.Equal("lead@example.com", msg.To)
			s.Equal(mailer.RegistrationSubject, msg.Subject)
			s.Contains(msg.HTML, "Night Owls")
			s.Contains(msg.HTML, "Team Leader")
			return nil
		},
	)

	_, err := s.service.Dispatch(context.Background(), team)
	s.NoError(err)
}

func (s *NotificationServiceSuite) TestDispatchWithoutTransport() {
	svc := NewNotificationService(nil, nil, nil)

	report, err := svc.Dispatch(context.Background(), teamOfSize(2))
	s.Nil(report)
	s.True(errors.Is(err, domain.ErrNotificationDelivery))
}

func TestMemberRole(t *testing.T) {
	assert.Equal(t, "Team Leader", MemberRole(0))
	assert.Equal(t, "Team Member 2", MemberRole(1))
	assert.Equal(t, "Team Member 5", MemberRole(4))
}
