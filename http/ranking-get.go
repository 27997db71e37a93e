package http

import (
	"net/http"

	"github.com/codeclash/backend/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *HttpServer) getRanking(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	competitionID, err := uuid.Parse(chi.URLParam(r, "competitionId"))
	if err != nil {
		writeJsonErrorResponse(w, "invalid competition id",
			http.StatusBadRequest, "invalid_competition_id", "competition")
		return
	}

	entries, err := s.engine.Ranking(r.Context(), competitionID)
	if err != nil {
		handleJsonSrvcError(log, w, err)
		return
	}

	response := make([]rankingEntryJson, len(entries))
	for i := range entries {
		response[i] = *mapRankingEntry(&entries[i])
	}

	writeJsonSuccessResponse(w, response)
}
