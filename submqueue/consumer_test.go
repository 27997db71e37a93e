package submqueue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/codeclash/backend/conf"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/scoring"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type acceptAllJudge struct{}

func (acceptAllJudge) Submit(ctx context.Context, code, language, exerciseRef string) (judge.Verdict, error) {
	return judge.Verdict{Status: judge.StatusAccepted, ExecTimeMs: 55}, nil
}

type capturePublisher struct {
	mu      sync.Mutex
	results []SubmitExerciseResult
}

func (p *capturePublisher) Publish(ctx context.Context, result SubmitExerciseResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, result)
	return nil
}

func (p *capturePublisher) last(t *testing.T) SubmitExerciseResult {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.results, "expected a published result")
	return p.results[len(p.results)-1]
}

func setupConsumer(t *testing.T) (*Consumer, *capturePublisher, SubmitExerciseCommand) {
	t.Helper()

	comp := contest.NewTemplate("Queue Cup")
	require.Nil(t, comp.Promote(contest.PromoteParams{
		InscriptionStart: time.Now().Add(-2 * time.Hour),
		InscriptionEnd:   time.Now().Add(-time.Hour),
		StartAt:          time.Now().Add(-time.Minute),
		Duration:         3 * time.Hour,
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
		Title:         "Sorting",
		JudgeUUID:     uuid.NewString(),
	}
	reg := contest.NewGroupRegistration(uuid.New(), comp.ID)

	store := scoring.NewInMemStore()
	store.PutCompetition(*comp)
	store.PutExercise(ex)
	store.PutRegistration(*reg)

	engine := scoring.NewEngine(store, acceptAllJudge{}, conf.DefaultScoringPolicy())
	publisher := &capturePublisher{}
	consumer := NewConsumer(engine, nil, "", publisher)

	cmd := SubmitExerciseCommand{
		CorrelationID: uuid.NewString(),
		ConnectionID:  "conn-81",
		GroupID:       reg.GroupID,
		ExerciseID:    ex.ID,
		CompetitionID: comp.ID,
		Code:          "sort(a)",
		Language:      "go",
		SubmittedAt:   time.Now(),
	}
	return consumer, publisher, cmd
}

func TestHandlePublishesSuccessResult(t *testing.T) {
	consumer, publisher, cmd := setupConsumer(t)

	consumer.handle(context.Background(), cmd)

	result := publisher.last(t)
	assert.Equal(t, cmd.CorrelationID, result.CorrelationID)
	assert.Equal(t, cmd.ConnectionID, result.ConnectionID)
	assert.True(t, result.Success)
	assert.True(t, result.Accepted)
	assert.Equal(t, string(judge.StatusAccepted), result.Verdict)
	assert.Equal(t, int64(55), result.ExecTimeMs)
	require.NotNil(t, result.SubmissionID)
	assert.Equal(t, 1, result.RankOrder)
	assert.Equal(t, conf.DefaultScoringPolicy().AwardPoints, result.Points)
	assert.Equal(t, 1, result.SolvedCount)
}

func TestHandlePublishesFailureResult(t *testing.T) {
	consumer, publisher, cmd := setupConsumer(t)
	cmd.Code = "" // fails the gate

	consumer.handle(context.Background(), cmd)

	result := publisher.last(t)
	assert.Equal(t, cmd.CorrelationID, result.CorrelationID)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.Nil(t, result.SubmissionID)
}

func TestHandleAlwaysTerminatesCorrelation(t *testing.T) {
	consumer, publisher, cmd := setupConsumer(t)
	cmd.CompetitionID = uuid.New() // unknown competition

	consumer.handle(context.Background(), cmd)

	result := publisher.last(t)
	assert.Equal(t, cmd.CorrelationID, result.CorrelationID)
	assert.False(t, result.Success)
}
