package scoring

import (
	"errors"
	"net/http"

	"github.com/codeclash/backend/srvcerror"
)

// ErrNotFound is the sentinel stores return when a referenced entity does
// not exist. The gate maps it to the matching service error.
var ErrNotFound = errors.New("not found")

const ErrCodeEmptyCode = "empty_submission_code"

func ErrEmptyCode() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptyCode,
		"submission code cannot be empty",
	).SetField("code").SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNoGroup = "caller_has_no_group"

func ErrNoGroup() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoGroup,
		"caller does not belong to a group",
	).SetField("group").SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeNotRegistered = "group_not_registered"

func ErrNotRegistered() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotRegistered,
		"group is not registered for this competition",
	).SetField("group").SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeGroupBlocked = "group_blocked"

func ErrGroupBlocked() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeGroupBlocked,
		"group is blocked in this competition",
	).SetField("group").SetHttpStatusCode(http.StatusForbidden)
}

const ErrCodeExerciseNotInCompetition = "exercise_not_in_competition"

func ErrExerciseNotInCompetition() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeExerciseNotInCompetition,
		"exercise does not belong to this competition",
	).SetField("exercise").SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeCompetitionNotOngoing = "competition_not_ongoing"

func ErrCompetitionNotOngoing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCompetitionNotOngoing,
		"competition is not accepting submissions",
	).SetField("competition").SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeSubmissionWindowClosed = "submission_window_closed"

func ErrSubmissionWindowClosed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionWindowClosed,
		"the submission window for this competition has closed",
	).SetField("competition").SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeExerciseNotConfigured = "exercise_not_configured"

func ErrExerciseNotConfigured() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeExerciseNotConfigured,
		"exercise is not configured for evaluation",
	).SetField("exercise").SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeCompetitionNotFound = "competition_not_found"

func ErrCompetitionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCompetitionNotFound,
		"competition was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeExerciseNotFound = "exercise_not_found"

func ErrExerciseNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeExerciseNotFound,
		"exercise was not found",
	).SetHttpStatusCode(http.StatusNotFound)
}
