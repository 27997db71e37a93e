package scoring

import (
	"context"

	"github.com/codeclash/backend/contest"
	"github.com/google/uuid"
)

// Store is the persistence boundary of the scoring engine. Implementations
// must enforce uniqueness of (competition, group) ranking entries, of
// (group, competition) registrations and of (competition, group, exercise)
// first-acceptance claims.
type Store interface {
	Competition(ctx context.Context, id uuid.UUID) (*contest.Competition, error)
	Exercise(ctx context.Context, id uuid.UUID) (*contest.Exercise, error)
	Registration(ctx context.Context, competitionID, groupID uuid.UUID) (*contest.GroupRegistration, error)

	// SaveSubmission appends a judged submission. Submissions are
	// append-only, there is no update path.
	SaveSubmission(ctx context.Context, subm *contest.Submission) error

	RankingEntries(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error)
	RankingEntryOf(ctx context.Context, competitionID, groupID uuid.UUID) (*contest.RankingEntry, error)
	SolvedCount(ctx context.Context, competitionID, groupID uuid.UUID) (int, error)

	// UpdateScore runs fn inside a transaction scoped to the competition.
	// Implementations must serialize callbacks per competition, including
	// when the competition has no ranking entries yet, so concurrent
	// recomputes never interleave and readers never observe a partial
	// reordering.
	UpdateScore(ctx context.Context, competitionID uuid.UUID, fn func(tx ScoreTx) error) error

	SaveAudit(ctx context.Context, entry AuditEntry) error
}

// ScoreTx is the transactional view handed to UpdateScore callbacks.
type ScoreTx interface {
	// ClaimFirstAcceptance records that the group solved the exercise and
	// reports whether this was the first accepted solution for the
	// (competition, group, exercise) triple. The claim is backed by a
	// uniqueness constraint, so two concurrent accepted submissions can
	// never both observe a first solve.
	ClaimFirstAcceptance(ctx context.Context, competitionID, groupID, exerciseID uuid.UUID) (bool, error)

	RankingEntries(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error)
	SaveRankingEntries(ctx context.Context, entries []contest.RankingEntry) error
	SolvedCount(ctx context.Context, competitionID, groupID uuid.UUID) (int, error)
}
