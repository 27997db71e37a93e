package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codeclash/backend/auth"
	"github.com/codeclash/backend/conf"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-key")

type scriptedJudge struct {
	verdict judge.Verdict
}

func (j scriptedJudge) Submit(ctx context.Context, code, language, exerciseRef string) (judge.Verdict, error) {
	return j.verdict, nil
}

type httpFixture struct {
	server *HttpServer
	store  *scoring.InMemStore
	comp   *contest.Competition
	ex     contest.Exercise
	reg    *contest.GroupRegistration
}

func setupServer(t *testing.T) *httpFixture {
	t.Helper()

	comp := contest.NewTemplate("HTTP Cup")
	require.Nil(t, comp.Promote(contest.PromoteParams{
		InscriptionStart: time.Now().Add(-2 * time.Hour),
		InscriptionEnd:   time.Now().Add(-time.Hour),
		StartAt:          time.Now().Add(-time.Minute),
		Duration:         4 * time.Hour,
	}))
	for _, status := range []contest.CompetitionStatus{
		contest.StatusOpenInscriptions,
		contest.StatusClosedInscriptions,
		contest.StatusOngoing,
	} {
		require.Nil(t, comp.Advance(status))
	}

	ex := contest.Exercise{
		ID:            uuid.New(),
		CompetitionID: comp.ID,
		Title:         "Graphs",
		JudgeUUID:     uuid.NewString(),
	}
	reg := contest.NewGroupRegistration(uuid.New(), comp.ID)

	store := scoring.NewInMemStore()
	store.PutCompetition(*comp)
	store.PutExercise(ex)
	store.PutRegistration(*reg)

	engine := scoring.NewEngine(store,
		scriptedJudge{verdict: judge.Verdict{Status: judge.StatusAccepted, ExecTimeMs: 77}},
		conf.DefaultScoringPolicy())
	server := NewHttpServer(engine, testJwtKey)

	return &httpFixture{server: server, store: store, comp: comp, ex: ex, reg: reg}
}

func (fx *httpFixture) postSubmission(t *testing.T, groupID *uuid.UUID, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/submission", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	token, err := auth.GenerateJWT("tester", uuid.New(), groupID, testJwtKey)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(w, req)
	return w
}

func TestPostSubmissionSuccess(t *testing.T) {
	fx := setupServer(t)

	w := fx.postSubmission(t, &fx.reg.GroupID, map[string]string{
		"competitionId": fx.comp.ID.String(),
		"exerciseId":    fx.ex.ID.String(),
		"code":          "solve()",
		"language":      "go",
	})

	require.Equal(t, http.StatusOK, w.Code, "response body: %s", w.Body.String())

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Submission submissionJson    `json:"submission"`
			Ranking    *rankingEntryJson `json:"ranking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	assert.True(t, resp.Data.Submission.Accepted)
	assert.Equal(t, string(judge.StatusAccepted), resp.Data.Submission.Verdict)
	require.NotNil(t, resp.Data.Ranking)
	assert.Equal(t, 1, resp.Data.Ranking.RankOrder)
	assert.Equal(t, conf.DefaultScoringPolicy().AwardPoints, resp.Data.Ranking.Points)
}

func TestPostSubmissionBlockedGroup(t *testing.T) {
	fx := setupServer(t)
	fx.reg.Block()
	fx.store.PutRegistration(*fx.reg)

	w := fx.postSubmission(t, &fx.reg.GroupID, map[string]string{
		"competitionId": fx.comp.ID.String(),
		"exerciseId":    fx.ex.ID.String(),
		"code":          "solve()",
		"language":      "go",
	})

	require.Equal(t, http.StatusForbidden, w.Code)

	var resp JsonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, scoring.ErrCodeGroupBlocked, resp.ErrCode)
	assert.Equal(t, "group", resp.ErrField)

	assert.Empty(t, fx.store.Submissions(), "no submission row for a rejected attempt")
}

func TestPostSubmissionWithoutGroup(t *testing.T) {
	fx := setupServer(t)

	w := fx.postSubmission(t, nil, map[string]string{
		"competitionId": fx.comp.ID.String(),
		"exerciseId":    fx.ex.ID.String(),
		"code":          "solve()",
		"language":      "go",
	})

	require.Equal(t, http.StatusForbidden, w.Code)

	var resp JsonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, scoring.ErrCodeNoGroup, resp.ErrCode)
}

func TestGetRanking(t *testing.T) {
	fx := setupServer(t)

	w := fx.postSubmission(t, &fx.reg.GroupID, map[string]string{
		"competitionId": fx.comp.ID.String(),
		"exerciseId":    fx.ex.ID.String(),
		"code":          "solve()",
		"language":      "go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet,
		"/competitions/"+fx.comp.ID.String()+"/ranking", nil)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "response body: %s", rec.Body.String())

	var resp struct {
		Status string             `json:"status"`
		Data   []rankingEntryJson `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, fx.reg.GroupID.String(), resp.Data[0].GroupID)
	assert.Equal(t, 1, resp.Data[0].RankOrder)
}
