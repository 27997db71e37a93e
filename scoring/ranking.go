package scoring

import (
	"sort"

	"github.com/codeclash/backend/contest"
)

// Recalculate re-sorts the competition's ranking entries and reassigns rank
// order 1..N. Points descending, ties broken by ascending penalty; groups
// equal on both keep their relative order. The recompute is a pure function
// of the entries, re-running it never changes an already correct ordering.
func Recalculate(entries []contest.RankingEntry) []contest.RankingEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Penalty < entries[j].Penalty
	})
	for i := range entries {
		// rank order is always i+1 > 0, the rule cannot break here
		_ = entries[i].SetRankOrder(i + 1)
	}
	return entries
}
