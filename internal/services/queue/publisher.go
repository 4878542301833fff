package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var ErrQueueClosed = errors.New("queue channel not available")

// NewLabelJob builds a pending job for an order.
func NewLabelJob(req models.GenerateRequest, baseURL string) *models.LabelJob {
	now := time.Now().UTC()
	return &models.LabelJob{
		ID:        uuid.New().String(),
		Request:   req,
		BaseURL:   baseURL,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Submit records a pending job and hands it to the workers.
func (q *QueueService) Submit(ctx context.Context, req models.GenerateRequest, baseURL string) (*models.LabelJob, error) {
	job := NewLabelJob(req, baseURL)

	if q.store != nil {
		if err := q.store.SaveJob(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to record job: %w", err)
		}
	}

	if err := q.PublishJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (q *QueueService) PublishJob(ctx context.Context, job *models.LabelJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.channel == nil {
		return ErrQueueClosed
	}

	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    job.ID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue",
		zap.String("job_id", job.ID),
		zap.String("order_id", job.Request.OrderID))
	return nil
}
