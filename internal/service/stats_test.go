package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/repository/memory"
)

func TestStatsService_GetStats(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTeamRepository()
	teams := NewTeamService(repo, &recordingNotifier{}, domain.DefaultLeaderPolicy(), nil, nil)
	stats := NewStatsService(repo)

	empty, err := stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalTeams)
	assert.Equal(t, domain.Decimal2(0), empty.AverageTeamSize)

	for i, size := range []int{1, 3, 5} {
		var extra []*domain.MemberInput
		for j := 1; j < size; j++ {
			extra = append(extra, member("M", fmt.Sprintf("t%d-m%d@example.com", i, j)))
		}
		_, err := teams.Register(ctx, submission(fmt.Sprintf("Team %d", i), fmt.Sprintf("lead%d@example.com", i), extra...))
		require.NoError(t, err)
	}

	got, err := stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalTeams)
	assert.Equal(t, 9, got.TotalParticipants)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"averageTeamSize":3.00`)
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, domain.Decimal2(2.33), ComputeStats(3, 7).AverageTeamSize)
	assert.Equal(t, domain.Decimal2(0), ComputeStats(0, 0).AverageTeamSize)
}
