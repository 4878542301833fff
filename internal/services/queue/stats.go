package queue

import (
	"fmt"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
)

// Stats reports the backlog of label jobs and how many consumers drain it.
func (q *QueueService) Stats() (*models.QueueStats, error) {
	if q.channel == nil {
		return nil, ErrQueueClosed
	}

	info, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue %s: %w", q.queueName, err)
	}

	return &models.QueueStats{
		Name:      info.Name,
		Messages:  info.Messages,
		Consumers: info.Consumers,
		Workers:   q.workers,
	}, nil
}

// HealthCheck checks if RabbitMQ is available
func (q *QueueService) HealthCheck() string {
	if q.conn == nil || q.conn.IsClosed() {
		return "unhealthy: connection closed"
	}

	if q.channel == nil {
		return "unhealthy: channel not available"
	}

	return "healthy"
}
