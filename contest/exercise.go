package contest

import (
	"time"

	"github.com/google/uuid"
)

type Exercise struct {
	ID            uuid.UUID
	CompetitionID uuid.UUID
	Title         string
	Description   *string
	EstimatedTime time.Duration

	// JudgeUUID identifies the exercise inside the external judge. An
	// exercise without it cannot be evaluated and must be rejected before
	// the judge is ever called.
	JudgeUUID string
}

func (e *Exercise) HasJudgeRef() bool {
	return e.JudgeUUID != ""
}
