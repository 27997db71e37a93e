package submqueue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Enqueue puts a submit command on the intake queue with the same codec
// the consumer reads. Other services use this instead of hand-rolling the
// message format.
func Enqueue(ctx context.Context, client *sqs.Client, queueURL string, cmd SubmitExerciseCommand) error {
	body, err := encodeBody(cmd)
	if err != nil {
		return err
	}

	_, err = client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to intake queue: %w", err)
	}
	return nil
}
