package queue

import (
	"context"
	"fmt"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const DefaultQueueName = "label_generation"

type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest, baseURL string) *models.GenerateResponse
}

type JobStore interface {
	SaveJob(ctx context.Context, job *models.LabelJob) error
}

type QueueService struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	logger    *zap.Logger
	queueName string
	generator Generator
	store     JobStore
	workers   int
}

func NewQueueService(
	rabbitmqURL string,
	queueName string,
	generator Generator,
	store JobStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = DefaultQueueName
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// One unacked label job per worker; rendering is CPU bound.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &QueueService{
		conn:      conn,
		channel:   channel,
		logger:    logger,
		queueName: queueName,
		generator: generator,
		store:     store,
	}, nil
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
	return nil
}
