package contest

import (
	"net/http"
	"time"

	"github.com/codeclash/backend/srvcerror"
	"github.com/google/uuid"
)

type CompetitionStatus string

const (
	StatusModelTemplate      CompetitionStatus = "model_template"
	StatusPending            CompetitionStatus = "pending"
	StatusOpenInscriptions   CompetitionStatus = "open_inscriptions"
	StatusClosedInscriptions CompetitionStatus = "closed_inscriptions"
	StatusOngoing            CompetitionStatus = "ongoing"
	StatusFinished           CompetitionStatus = "finished"
)

// statusSucc maps each status to its only legal successor. Transitions are
// one-directional, there is no rollback.
var statusSucc = map[CompetitionStatus]CompetitionStatus{
	StatusModelTemplate:      StatusPending,
	StatusPending:            StatusOpenInscriptions,
	StatusOpenInscriptions:   StatusClosedInscriptions,
	StatusClosedInscriptions: StatusOngoing,
	StatusOngoing:            StatusFinished,
}

const ErrCodeIllegalTransition = "illegal_status_transition"

func ErrIllegalTransition(from, to CompetitionStatus) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeIllegalTransition,
		"competition cannot move from "+string(from)+" to "+string(to),
	).SetHttpStatusCode(http.StatusConflict)
}

type Competition struct {
	ID     uuid.UUID
	Name   string
	Status CompetitionStatus

	InscriptionStart time.Time
	InscriptionEnd   time.Time
	StartAt          time.Time
	EndAt            time.Time

	// BlockSubmissionsAt, when set, closes the submission window before the
	// scheduled end. StopRankingAt bounds the late-penalty window.
	BlockSubmissionsAt *time.Time
	StopRankingAt      *time.Time

	SubmissionPenalty time.Duration

	MaxMembers        int
	MaxExercises      int
	MaxSubmissionSize int

	CreatedAt time.Time
}

// NewTemplate creates a competition template. Templates carry only a name;
// limits and schedule are set when the template is promoted.
func NewTemplate(name string) *Competition {
	return &Competition{
		ID:        uuid.New(),
		Name:      name,
		Status:    StatusModelTemplate,
		CreatedAt: time.Now(),
	}
}

type PromoteParams struct {
	InscriptionStart time.Time
	InscriptionEnd   time.Time
	StartAt          time.Time
	Duration         time.Duration

	SubmissionPenalty time.Duration
	// BlockSubmissionsBefore closes the submission window this long before
	// the competition end. StopRankingAfter keeps the penalty window open
	// this long past the block cutoff. Zero disables either cutoff.
	BlockSubmissionsBefore time.Duration
	StopRankingAfter       time.Duration

	MaxMembers        int
	MaxExercises      int
	MaxSubmissionSize int
}

// Promote turns a template into a pending competition, in place. It is the
// only legal mutation of a ModelTemplate competition.
func (c *Competition) Promote(params PromoteParams) *srvcerror.Error {
	if c.Status != StatusModelTemplate {
		return ErrIllegalTransition(c.Status, StatusPending)
	}

	if err := CheckRules(
		InscriptionWindowValid{Start: params.InscriptionStart, End: params.InscriptionEnd},
		PenaltyNotNegative{Penalty: params.SubmissionPenalty},
	); err != nil {
		return err
	}

	c.InscriptionStart = params.InscriptionStart
	c.InscriptionEnd = params.InscriptionEnd
	c.StartAt = params.StartAt
	c.EndAt = params.StartAt.Add(params.Duration)
	c.SubmissionPenalty = params.SubmissionPenalty
	c.MaxMembers = params.MaxMembers
	c.MaxExercises = params.MaxExercises
	c.MaxSubmissionSize = params.MaxSubmissionSize

	if params.BlockSubmissionsBefore > 0 {
		blockAt := c.EndAt.Add(-params.BlockSubmissionsBefore)
		c.BlockSubmissionsAt = &blockAt
	}
	if params.StopRankingAfter > 0 && c.BlockSubmissionsAt != nil {
		stopAt := c.BlockSubmissionsAt.Add(params.StopRankingAfter)
		c.StopRankingAt = &stopAt
	}

	c.Status = StatusPending
	return nil
}

// Advance moves the competition to the given status, rejecting anything that
// is not the immediate successor of the current status.
func (c *Competition) Advance(to CompetitionStatus) *srvcerror.Error {
	if statusSucc[c.Status] != to {
		return ErrIllegalTransition(c.Status, to)
	}
	c.Status = to
	return nil
}

func (c *Competition) IsOngoing() bool {
	return c.Status == StatusOngoing
}

// SubmissionWindowClosed reports whether the block cutoff has passed.
func (c *Competition) SubmissionWindowClosed(now time.Time) bool {
	return c.BlockSubmissionsAt != nil && now.After(*c.BlockSubmissionsAt)
}

// InPenaltyWindow reports whether a late submission still counts for the
// ranking at the cost of the configured penalty.
func (c *Competition) InPenaltyWindow(now time.Time) bool {
	if c.BlockSubmissionsAt == nil || c.StopRankingAt == nil {
		return false
	}
	return now.After(*c.BlockSubmissionsAt) && now.Before(*c.StopRankingAt)
}
