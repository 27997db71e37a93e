package scoring

import (
	"math/rand"
	"testing"
	"time"

	"github.com/codeclash/backend/contest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(points int, penalty time.Duration) contest.RankingEntry {
	e := contest.NewRankingEntry(uuid.New(), uuid.New())
	e.Points = points
	e.Penalty = penalty
	return *e
}

func TestRecalculateTieBreakByPenalty(t *testing.T) {
	g1 := entry(10, 5*time.Minute)
	g2 := entry(10, 2*time.Minute)

	out := Recalculate([]contest.RankingEntry{g1, g2})
	require.Len(t, out, 2)

	assert.Equal(t, g2.GroupID, out[0].GroupID)
	assert.Equal(t, 1, out[0].RankOrder)
	assert.Equal(t, g1.GroupID, out[1].GroupID)
	assert.Equal(t, 2, out[1].RankOrder)
}

func TestRecalculatePointsDominatePenalty(t *testing.T) {
	low := entry(3, 0)
	high := entry(7, 90*time.Minute)

	out := Recalculate([]contest.RankingEntry{low, high})
	assert.Equal(t, high.GroupID, out[0].GroupID)
	assert.Equal(t, low.GroupID, out[1].GroupID)
}

// repeated recomputes over shuffled snapshots must always converge to the
// same order and assign a valid 1..N permutation
func TestRecalculateDeterministic(t *testing.T) {
	entries := []contest.RankingEntry{
		entry(10, 5*time.Minute),
		entry(10, 2*time.Minute),
		entry(4, 0),
		entry(0, time.Hour),
		entry(25, 40*time.Minute),
	}

	reference := Recalculate(append([]contest.RankingEntry{}, entries...))

	for i := 0; i < 50; i++ {
		shuffled := append([]contest.RankingEntry{}, entries...)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		out := Recalculate(shuffled)
		require.Len(t, out, len(reference))
		for j := range out {
			assert.Equal(t, j+1, out[j].RankOrder)
			assert.Equal(t, reference[j].GroupID, out[j].GroupID)
		}
	}
}

func TestRecalculateFullTieIsValidPermutation(t *testing.T) {
	entries := []contest.RankingEntry{
		entry(5, time.Minute),
		entry(5, time.Minute),
		entry(5, time.Minute),
	}

	out := Recalculate(entries)
	seen := map[int]bool{}
	for _, e := range out {
		seen[e.RankOrder] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}
