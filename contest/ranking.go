package contest

import (
	"time"

	"github.com/codeclash/backend/srvcerror"
	"github.com/google/uuid"
)

// RankingEntry is the per-group, per-competition aggregate of points,
// penalty and leaderboard position. Exactly one entry exists per
// (competition, group) pair; it is created lazily on the group's first
// accepted submission.
type RankingEntry struct {
	ID            uuid.UUID
	CompetitionID uuid.UUID
	GroupID       uuid.UUID

	Points  int
	Penalty time.Duration

	// RankOrder is the 1-based leaderboard position, 0 while unranked.
	RankOrder int

	CreatedAt time.Time
}

func NewRankingEntry(competitionID, groupID uuid.UUID) *RankingEntry {
	return &RankingEntry{
		ID:            uuid.New(),
		CompetitionID: competitionID,
		GroupID:       groupID,
		CreatedAt:     time.Now(),
	}
}

func (e *RankingEntry) AddPoints(points int) *srvcerror.Error {
	if err := CheckRules(PointsNotNegative{Points: e.Points + points}); err != nil {
		return err
	}
	e.Points += points
	return nil
}

// AddPenalty increases the accumulated penalty. The penalty is
// monotonically non-decreasing, negative deltas are rejected.
func (e *RankingEntry) AddPenalty(penalty time.Duration) *srvcerror.Error {
	if err := CheckRules(PenaltyNotNegative{Penalty: penalty}); err != nil {
		return err
	}
	e.Penalty += penalty
	return nil
}

func (e *RankingEntry) SetRankOrder(order int) *srvcerror.Error {
	if err := CheckRules(RankOrderPositive{RankOrder: order}); err != nil {
		return err
	}
	e.RankOrder = order
	return nil
}
