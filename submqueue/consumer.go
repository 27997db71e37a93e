package submqueue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/codeclash/backend/logger"
	"github.com/codeclash/backend/scoring"
	"github.com/codeclash/backend/srvcerror"
)

// workerIP marks audit entries produced by the asynchronous path, which has
// no caller address.
const workerIP = "worker"

// Consumer is the asynchronous intake entry point. It drains submit
// commands from the intake queue, runs them through the shared scoring
// engine and publishes a terminal result for every command.
type Consumer struct {
	engine        *scoring.Engine
	client        *sqs.Client
	cmdQueueURL   string
	resultPublish ResultPublisher
	logger        *slog.Logger
}

func NewConsumer(
	engine *scoring.Engine,
	client *sqs.Client,
	cmdQueueURL string,
	resultPublish ResultPublisher,
) *Consumer {
	return &Consumer{
		engine:        engine,
		client:        client,
		cmdQueueURL:   cmdQueueURL,
		resultPublish: resultPublish,
		logger:        slog.Default().With("module", "submqueue"),
	}
}

// Start receives messages until ctx is cancelled. Each message is handled
// on its own goroutine so one slow judge call does not hold up unrelated
// submissions; the message is deleted after its result is published.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			output, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
				QueueUrl:            aws.String(c.cmdQueueURL),
				MaxNumberOfMessages: 10,
				WaitTimeSeconds:     1,
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error("failed to receive messages", "error", err)
				continue
			}

			for _, msg := range output.Messages {
				if msg.Body == nil || msg.ReceiptHandle == nil {
					c.logger.Error("received malformed sqs message, skipping")
					continue
				}
				body := *msg.Body
				handle := *msg.ReceiptHandle

				var cmd SubmitExerciseCommand
				if err := decodeBody(body, &cmd); err != nil {
					c.logger.Error("failed to decode command, dropping message", "error", err)
					c.deleteMessage(handle)
					continue
				}

				go func() {
					c.handle(logger.WithCorrelationID(ctx, cmd.CorrelationID), cmd)
					c.deleteMessage(handle)
				}()
			}
		}
	}
}

func (c *Consumer) handle(ctx context.Context, cmd SubmitExerciseCommand) {
	log := logger.FromContext(ctx)

	res, err := c.engine.Process(ctx, scoring.SubmitCmd{
		CompetitionID: cmd.CompetitionID,
		ExerciseID:    cmd.ExerciseID,
		GroupID:       cmd.GroupID,
		Code:          cmd.Code,
		Language:      cmd.Language,
		SubmittedAt:   cmd.SubmittedAt,
		Actor:         cmd.GroupID.String(),
		IP:            workerIP,
	})

	result := SubmitExerciseResult{
		CorrelationID: cmd.CorrelationID,
		ConnectionID:  cmd.ConnectionID,
	}

	if err != nil {
		srvcErr := &srvcerror.Error{}
		if errors.As(err, &srvcErr) {
			result.ErrorMessage = srvcErr.Error()
		} else {
			log.Error("failed to process submission", "error", err)
			result.ErrorMessage = "internal error"
		}
	} else {
		result.Success = true
		result.SubmissionID = &res.Submission.ID
		result.Accepted = res.Submission.Accepted
		result.Verdict = string(res.Submission.Verdict)
		result.ExecTimeMs = res.Submission.ExecTimeMs
		result.SolvedCount = res.SolvedCount
		if res.Ranking != nil {
			result.RankOrder = res.Ranking.RankOrder
			result.Points = res.Ranking.Points
			result.PenaltySecs = int64(res.Ranking.Penalty / time.Second)
		}
	}

	// every command gets a terminal result, even on infrastructure failure
	if err := c.resultPublish.Publish(ctx, result); err != nil {
		log.Error("failed to publish result", "error", err)
	}
}

func (c *Consumer) deleteMessage(handle string) {
	_, err := c.client.DeleteMessage(context.TODO(), &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.cmdQueueURL),
		ReceiptHandle: aws.String(handle),
	})
	if err != nil {
		c.logger.Error("failed to ack message", "error", err)
	}
}
