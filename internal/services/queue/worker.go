package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.workers++
	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go q.consume(ctx, msgs, workerID)

	return nil
}

// StartWorkers starts n consumers on the label queue.
func (q *QueueService) StartWorkers(ctx context.Context, n int) error {
	for i := 1; i <= n; i++ {
		if err := q.StartWorker(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func (q *QueueService) consume(ctx context.Context, msgs <-chan amqp.Delivery, workerID int) {
	for {
		select {
		case <-ctx.Done():
			q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
			return
		case msg, ok := <-msgs:
			if !ok {
				q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
				return
			}

			q.processMessage(ctx, msg, workerID)
		}
	}
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	var job models.LabelJob
	if err := json.Unmarshal(msg.Body, &job); err != nil || job.ID == "" {
		q.logger.Error("Failed to unmarshal job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		if err := msg.Nack(false, false); err != nil {
			q.logger.Error("Failed to nack message", zap.Error(err))
		}
		return
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.String("order_id", job.Request.OrderID),
		zap.Int("worker_id", workerID))

	q.processJob(ctx, &job)

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}
