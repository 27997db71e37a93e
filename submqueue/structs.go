package submqueue

import (
	"time"

	"github.com/google/uuid"
)

// SubmitExerciseCommand is the inbound queue message. CorrelationID ties
// the eventual result back to the caller; ConnectionID lets the real-time
// layer push the result to the right client connection.
type SubmitExerciseCommand struct {
	CorrelationID string    `json:"correlationId"`
	ConnectionID  string    `json:"connectionId"`
	GroupID       uuid.UUID `json:"groupId"`
	ExerciseID    uuid.UUID `json:"exerciseId"`
	CompetitionID uuid.UUID `json:"competitionId"`
	Code          string    `json:"code"`
	Language      string    `json:"language"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// SubmitExerciseResult is published for every consumed command, also on
// failure, so no correlation id is ever left without a terminal response.
type SubmitExerciseResult struct {
	CorrelationID string `json:"correlationId"`
	ConnectionID  string `json:"connectionId"`
	Success       bool   `json:"success"`
	ErrorMessage  string `json:"errorMessage,omitempty"`

	SubmissionID *uuid.UUID `json:"submissionId,omitempty"`
	Accepted     bool       `json:"accepted"`
	Verdict      string     `json:"verdict,omitempty"`
	ExecTimeMs   int64      `json:"executionTimeMs"`

	RankOrder   int   `json:"rankOrder"`
	Points      int   `json:"points"`
	PenaltySecs int64 `json:"penaltySecs"`
	SolvedCount int   `json:"solvedExerciseCount"`
}
