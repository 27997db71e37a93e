package contest

import (
	"net/http"
	"time"

	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/srvcerror"
	"github.com/google/uuid"
)

const ErrCodeAlreadyJudged = "submission_already_judged"

func ErrAlreadyJudged() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyJudged,
		"submission has already received a verdict",
	).SetHttpStatusCode(http.StatusConflict)
}

// Submission is one judged attempt of a group at an exercise. The core
// fields are immutable after construction; the judging outcome is set
// exactly once via SetJudgeResponse. Submissions are append-only and are
// never re-judged or deleted.
type Submission struct {
	ID            uuid.UUID
	ExerciseID    uuid.UUID
	GroupID       uuid.UUID
	CompetitionID uuid.UUID

	Code     string
	Language string

	SubmittedAt time.Time

	Verdict    judge.Status
	Accepted   bool
	ExecTimeMs int64

	judged bool
}

func NewSubmission(
	exerciseID, groupID, competitionID uuid.UUID,
	code, language string,
	submittedAt time.Time,
) (*Submission, *srvcerror.Error) {
	if err := CheckRules(CodeNotEmpty{Code: code}); err != nil {
		return nil, err
	}
	return &Submission{
		ID:            uuid.New(),
		ExerciseID:    exerciseID,
		GroupID:       groupID,
		CompetitionID: competitionID,
		Code:          code,
		Language:      language,
		SubmittedAt:   submittedAt,
	}, nil
}

// SetJudgeResponse records the terminal verdict. Accepted is derived from
// the verdict status, never set directly.
func (s *Submission) SetJudgeResponse(verdict judge.Verdict) *srvcerror.Error {
	if s.judged {
		return ErrAlreadyJudged()
	}
	s.Verdict = verdict.Status
	s.Accepted = verdict.Accepted()
	s.ExecTimeMs = verdict.ExecTimeMs
	s.judged = true
	return nil
}

func (s *Submission) Judged() bool {
	return s.judged
}
