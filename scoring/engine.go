package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/codeclash/backend/conf"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/judge"
	"github.com/google/uuid"
)

// Engine is the submission intake and ranking core shared by the HTTP
// handler and the queue consumer. Both entry points call Process so the
// scoring semantics cannot drift apart.
type Engine struct {
	logger *slog.Logger
	store  Store
	judge  judge.Client
	policy conf.ScoringPolicy

	listenerLock sync.Mutex
	rankingSubs  []rankingSub
}

func NewEngine(store Store, judgeClient judge.Client, policy conf.ScoringPolicy) *Engine {
	return &Engine{
		logger: slog.Default().With("module", "scoring"),
		store:  store,
		judge:  judgeClient,
		policy: policy,
	}
}

type SubmitCmd struct {
	CompetitionID uuid.UUID
	ExerciseID    uuid.UUID
	GroupID       uuid.UUID

	Code     string
	Language string

	// SubmittedAt is the client-observed submission time for the async
	// path; zero means "now".
	SubmittedAt time.Time

	Actor string // username on the sync path, "worker" on the async path
	IP    string
}

type Result struct {
	Submission *contest.Submission

	// Ranking is the caller group's entry after the update, nil when the
	// group has no entry yet.
	Ranking     *contest.RankingEntry
	SolvedCount int
}

// Process runs the full intake sequence: gate, judge, persist, score,
// recompute ranking, audit. Validation rejections and infrastructure
// failures come back as errors; judge failures do not, they surface as a
// terminal verdict on the stored submission.
func (e *Engine) Process(ctx context.Context, cmd SubmitCmd) (*Result, error) {
	now := time.Now()
	submittedAt := cmd.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = now
	}

	vctx, err := e.gate(ctx, cmd, now)
	if err != nil {
		return nil, err
	}

	verdict, err := e.judge.Submit(ctx, cmd.Code, cmd.Language, vctx.ex.JudgeUUID)
	if err != nil {
		return nil, fmt.Errorf("judge call aborted: %w", err)
	}

	subm, serr := contest.NewSubmission(
		cmd.ExerciseID, cmd.GroupID, cmd.CompetitionID,
		cmd.Code, cmd.Language, submittedAt)
	if serr != nil {
		return nil, serr
	}
	if serr := subm.SetJudgeResponse(verdict); serr != nil {
		return nil, serr
	}

	if err := e.store.SaveSubmission(ctx, subm); err != nil {
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	result := &Result{Submission: subm}

	if subm.Accepted {
		if err := e.applyScore(ctx, vctx, subm, now, result); err != nil {
			return nil, err
		}
	} else {
		entry, err := e.store.RankingEntryOf(ctx, cmd.CompetitionID, cmd.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to read ranking entry: %w", err)
		}
		result.Ranking = entry
		solved, err := e.store.SolvedCount(ctx, cmd.CompetitionID, cmd.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to count solved exercises: %w", err)
		}
		result.SolvedCount = solved
	}

	audit := NewAuditEntry(cmd.Actor, cmd.IP, ActionSubmitExercise,
		cmd.GroupID, cmd.CompetitionID)
	if err := e.store.SaveAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to persist audit entry: %w", err)
	}

	e.logger.Info("submission processed",
		"submission_id", subm.ID,
		"competition_id", cmd.CompetitionID,
		"group_id", cmd.GroupID,
		"verdict", subm.Verdict,
		"accepted", subm.Accepted)

	return result, nil
}

// applyScore awards points for a first acceptance, applies the late
// penalty and recomputes the full leaderboard, all inside one
// competition-scoped transaction.
func (e *Engine) applyScore(
	ctx context.Context,
	vctx *validatedCtx,
	subm *contest.Submission,
	now time.Time,
	result *Result,
) error {
	var standings []contest.RankingEntry

	err := e.store.UpdateScore(ctx, vctx.comp.ID, func(tx ScoreTx) error {
		firstSolve, err := tx.ClaimFirstAcceptance(ctx,
			vctx.comp.ID, subm.GroupID, subm.ExerciseID)
		if err != nil {
			return fmt.Errorf("failed to claim first acceptance: %w", err)
		}

		entries, err := tx.RankingEntries(ctx, vctx.comp.ID)
		if err != nil {
			return fmt.Errorf("failed to load ranking entries: %w", err)
		}

		idx := -1
		for i := range entries {
			if entries[i].GroupID == subm.GroupID {
				idx = i
				break
			}
		}
		if idx == -1 {
			entries = append(entries, *contest.NewRankingEntry(vctx.comp.ID, subm.GroupID))
			idx = len(entries) - 1
		}

		if firstSolve {
			if serr := entries[idx].AddPoints(e.policy.AwardPoints); serr != nil {
				return serr
			}
		}

		if vctx.comp.InPenaltyWindow(now) {
			if serr := entries[idx].AddPenalty(vctx.comp.SubmissionPenalty); serr != nil {
				return serr
			}
		}

		entries = Recalculate(entries)

		if err := tx.SaveRankingEntries(ctx, entries); err != nil {
			return fmt.Errorf("failed to persist ranking entries: %w", err)
		}

		for i := range entries {
			if entries[i].GroupID == subm.GroupID {
				entry := entries[i]
				result.Ranking = &entry
				break
			}
		}

		solved, err := tx.SolvedCount(ctx, vctx.comp.ID, subm.GroupID)
		if err != nil {
			return fmt.Errorf("failed to count solved exercises: %w", err)
		}
		result.SolvedCount = solved

		standings = entries
		return nil
	})
	if err != nil {
		return err
	}

	e.broadcastRankingUpdate(&RankingUpdate{
		CompetitionID: vctx.comp.ID,
		Entries:       standings,
	})
	return nil
}

// Ranking returns the current leaderboard of a competition.
func (e *Engine) Ranking(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error) {
	if _, err := e.store.Competition(ctx, competitionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCompetitionNotFound().SetDebug(err)
		}
		return nil, err
	}
	return e.store.RankingEntries(ctx, competitionID)
}
