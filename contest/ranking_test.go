package contest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingEntryPointsNeverNegative(t *testing.T) {
	entry := NewRankingEntry(uuid.New(), uuid.New())
	require.Nil(t, entry.AddPoints(3))

	err := entry.AddPoints(-5)
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeRuleViolation, err.ErrorCode())
	assert.Equal(t, 3, entry.Points)
}

func TestRankingEntryPenaltyMonotonic(t *testing.T) {
	entry := NewRankingEntry(uuid.New(), uuid.New())
	require.Nil(t, entry.AddPenalty(10*time.Minute))
	require.Nil(t, entry.AddPenalty(5*time.Minute))
	assert.Equal(t, 15*time.Minute, entry.Penalty)

	err := entry.AddPenalty(-time.Minute)
	require.NotNil(t, err)
	assert.Equal(t, 15*time.Minute, entry.Penalty)
}

func TestRankingEntryRankOrderPositive(t *testing.T) {
	entry := NewRankingEntry(uuid.New(), uuid.New())
	assert.Equal(t, 0, entry.RankOrder, "fresh entries are unranked")

	err := entry.SetRankOrder(0)
	require.NotNil(t, err)

	require.Nil(t, entry.SetRankOrder(1))
	assert.Equal(t, 1, entry.RankOrder)
}
