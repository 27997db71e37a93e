package scoring

import (
	"context"
	"errors"
	"time"

	"github.com/codeclash/backend/contest"
	"github.com/google/uuid"
)

// validatedCtx is the context a submission is judged and scored against.
// It only exists for submissions that passed every gate check.
type validatedCtx struct {
	comp *contest.Competition
	ex   *contest.Exercise
	reg  *contest.GroupRegistration
}

// gate validates a submission command against competition, registration and
// exercise state. The checks run in a fixed order and short-circuit on the
// first failure; no judge call happens for a rejected submission.
func (e *Engine) gate(ctx context.Context, cmd SubmitCmd, now time.Time) (*validatedCtx, error) {
	if cmd.Code == "" {
		return nil, ErrEmptyCode()
	}

	if cmd.GroupID == uuid.Nil {
		return nil, ErrNoGroup()
	}

	comp, err := e.store.Competition(ctx, cmd.CompetitionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCompetitionNotFound().SetDebug(err)
		}
		return nil, err
	}

	reg, err := e.store.Registration(ctx, cmd.CompetitionID, cmd.GroupID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotRegistered().SetDebug(err)
		}
		return nil, err
	}

	if reg.Blocked {
		return nil, ErrGroupBlocked()
	}

	ex, err := e.store.Exercise(ctx, cmd.ExerciseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrExerciseNotFound().SetDebug(err)
		}
		return nil, err
	}
	if ex.CompetitionID != comp.ID {
		return nil, ErrExerciseNotInCompetition()
	}

	if !comp.IsOngoing() {
		return nil, ErrCompetitionNotOngoing()
	}

	// past the block cutoff only the penalty window lets a submission in
	if comp.SubmissionWindowClosed(now) && !comp.InPenaltyWindow(now) {
		return nil, ErrSubmissionWindowClosed()
	}

	if !ex.HasJudgeRef() {
		return nil, ErrExerciseNotConfigured()
	}

	return &validatedCtx{comp: comp, ex: ex, reg: reg}, nil
}
