package contest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRulesReturnsFirstViolation(t *testing.T) {
	err := CheckRules(
		PointsNotNegative{Points: 5},
		PenaltyNotNegative{Penalty: -time.Minute},
		RankOrderPositive{RankOrder: 0},
	)
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeRuleViolation, err.ErrorCode())
	assert.Equal(t, "penalty cannot be negative", err.Error())
}

func TestCheckRulesAllHold(t *testing.T) {
	err := CheckRules(
		PointsNotNegative{Points: 0},
		PenaltyNotNegative{Penalty: 0},
		RankOrderPositive{RankOrder: 1},
		CodeNotEmpty{Code: "print(42)"},
	)
	assert.Nil(t, err)
}

func TestInscriptionWindowRule(t *testing.T) {
	start := time.Now()
	assert.False(t, InscriptionWindowValid{Start: start, End: start}.IsBroken())
	assert.False(t, InscriptionWindowValid{Start: start, End: start.Add(time.Hour)}.IsBroken())
	assert.True(t, InscriptionWindowValid{Start: start, End: start.Add(-time.Second)}.IsBroken())
}
