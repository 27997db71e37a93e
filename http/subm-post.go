package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/codeclash/backend/auth"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/logger"
	"github.com/codeclash/backend/scoring"
	"github.com/google/uuid"
)

type submissionJson struct {
	ID          string    `json:"id"`
	ExerciseID  string    `json:"exerciseId"`
	GroupID     string    `json:"groupId"`
	Verdict     string    `json:"verdict"`
	Accepted    bool      `json:"accepted"`
	ExecTimeMs  int64     `json:"executionTimeMs"`
	Language    string    `json:"language"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type rankingEntryJson struct {
	GroupID     string `json:"groupId"`
	Points      int    `json:"points"`
	PenaltySecs int64  `json:"penaltySecs"`
	RankOrder   int    `json:"rankOrder"`
}

func mapSubmission(subm *contest.Submission) submissionJson {
	return submissionJson{
		ID:          subm.ID.String(),
		ExerciseID:  subm.ExerciseID.String(),
		GroupID:     subm.GroupID.String(),
		Verdict:     string(subm.Verdict),
		Accepted:    subm.Accepted,
		ExecTimeMs:  subm.ExecTimeMs,
		Language:    subm.Language,
		SubmittedAt: subm.SubmittedAt,
	}
}

func mapRankingEntry(entry *contest.RankingEntry) *rankingEntryJson {
	if entry == nil {
		return nil
	}
	return &rankingEntryJson{
		GroupID:     entry.GroupID.String(),
		Points:      entry.Points,
		PenaltySecs: int64(entry.Penalty / time.Second),
		RankOrder:   entry.RankOrder,
	}
}

func (s *HttpServer) postSubmission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	type postSubmissionRequest struct {
		CompetitionID string `json:"competitionId"`
		ExerciseID    string `json:"exerciseId"`
		Code          string `json:"code"`
		Language      string `json:"language"`
	}

	var request postSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	competitionID, err := uuid.Parse(request.CompetitionID)
	if err != nil {
		writeJsonErrorResponse(w, "invalid competition id",
			http.StatusBadRequest, "invalid_competition_id", "competition")
		return
	}
	exerciseID, err := uuid.Parse(request.ExerciseID)
	if err != nil {
		writeJsonErrorResponse(w, "invalid exercise id",
			http.StatusBadRequest, "invalid_exercise_id", "exercise")
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	actor := ""
	if claims != nil {
		actor = claims.Username
	}

	result, err := s.engine.Process(r.Context(), scoring.SubmitCmd{
		CompetitionID: competitionID,
		ExerciseID:    exerciseID,
		GroupID:       claims.GroupID(),
		Code:          request.Code,
		Language:      request.Language,
		Actor:         actor,
		IP:            r.RemoteAddr,
	})
	if err != nil {
		handleJsonSrvcError(log, w, err)
		return
	}

	writeJsonSuccessResponse(w, struct {
		Submission submissionJson    `json:"submission"`
		Ranking    *rankingEntryJson `json:"ranking"`
	}{
		Submission: mapSubmission(result.Submission),
		Ranking:    mapRankingEntry(result.Ranking),
	})
}
