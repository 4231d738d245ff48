package service

import (
	"context"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/repository"
)

// StatsService handles statistics queries
type StatsService struct {
	teamRepo repository.TeamRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(teamRepo repository.TeamRepository) *StatsService {
	return &StatsService{teamRepo: teamRepo}
}

// GetStats returns team count, participant count and average team size
func (s *StatsService) GetStats(ctx context.Context) (*domain.TeamStats, error) {
	teams, participants, err := s.teamRepo.CountMembers(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(teams, participants), nil
}

// ComputeStats builds stats from raw counts; average is rounded to 2 decimals
func ComputeStats(teams, participants int) *domain.TeamStats {
	stats := &domain.TeamStats{
		TotalTeams:        teams,
		TotalParticipants: participants,
	}
	if teams > 0 {
		stats.AverageTeamSize = domain.RoundDecimal2(float64(participants) / float64(teams))
	}
	return stats
}
