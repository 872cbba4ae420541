package worker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/sohailkhan2596/saas-analytics-service/internal/config"
	"github.com/sohailkhan2596/saas-analytics-service/internal/queue"
)

// RecomputeMessage is the queue payload triggering one recompute run
type RecomputeMessage struct {
	RequestID   string `json:"request_id"`
	RequestedBy string `json:"requested_by"`
	Reason      string `json:"reason"`
	RequestedAt int64  `json:"requested_at"`
}

// Worker consumes recompute requests and runs the pipeline once per message.
// Recomputes are full replacements, so processing a redelivered message twice
// converges on the same stored output.
type Worker struct {
	receiver *Receiver
	consumer queue.QueueConsumer
	pipeline *Pipeline
	log      *zap.Logger
}

// NewWorker creates a new recompute worker
func NewWorker(cfg *config.Config, consumer queue.QueueConsumer, pipeline *Pipeline, log *zap.Logger) *Worker {
	receiver := NewReceiver(consumer, ReceiverConfig{
		MaxMessages:     1,
		WaitTimeSeconds: cfg.Worker.ReceiveWaitSec,
		BufferSize:      1,
	}, log)

	return &Worker{
		receiver: receiver,
		consumer: consumer,
		pipeline: pipeline,
		log:      log,
	}
}

// Start begins the worker loop and blocks until ctx is canceled
func (w *Worker) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, 1)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		w.receiver.Start(ctx, messageChan)
	}()

	go func() {
		defer wg.Done()
		w.process(ctx, messageChan)
	}()

	wg.Wait()
	return nil
}

func (w *Worker) process(ctx context.Context, messages <-chan types.Message) {
	for msg := range messages {
		w.handleMessage(ctx, msg)
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg types.Message) {
	var req RecomputeMessage
	if msg.Body != nil {
		if err := json.Unmarshal([]byte(*msg.Body), &req); err != nil {
			w.log.Warn("Failed to parse recompute message, running anyway",
				zap.Error(err))
		}
	}

	w.log.Info("Starting recompute run",
		zap.String("request_id", req.RequestID),
		zap.String("requested_by", req.RequestedBy),
		zap.String("reason", req.Reason))

	if err := w.pipeline.Run(ctx); err != nil {
		// Leave the message in the queue for redelivery
		w.log.Error("Recompute run failed",
			zap.String("request_id", req.RequestID),
			zap.Error(err))
		return
	}

	if msg.ReceiptHandle != nil {
		_, err := w.consumer.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
			QueueUrl:      aws.String(w.consumer.QueueURL()),
			ReceiptHandle: msg.ReceiptHandle,
		})
		if err != nil {
			w.log.Error("Failed to delete recompute message",
				zap.String("request_id", req.RequestID),
				zap.Error(err))
		}
	}
}
