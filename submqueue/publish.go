package submqueue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// ResultPublisher is the outbound side of the asynchronous path.
type ResultPublisher interface {
	Publish(ctx context.Context, result SubmitExerciseResult) error
}

// SqsResultPublisher publishes results to the result queue the real-time
// layer consumes.
type SqsResultPublisher struct {
	client   *sqs.Client
	queueURL string
}

func NewSqsResultPublisher(client *sqs.Client, queueURL string) *SqsResultPublisher {
	return &SqsResultPublisher{client: client, queueURL: queueURL}
}

func (p *SqsResultPublisher) Publish(ctx context.Context, result SubmitExerciseResult) error {
	body, err := encodeBody(result)
	if err != nil {
		return err
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to send result to queue: %w", err)
	}
	return nil
}
