package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/sohailkhan2596/saas-analytics-service/internal/dto"
)

// RecomputePublisher defines the interface for publishing recompute requests
type RecomputePublisher interface {
	PublishRecompute(ctx context.Context, req *dto.RecomputeRequest, requestID string) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
