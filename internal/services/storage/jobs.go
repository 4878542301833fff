package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/redis/go-redis/v9"
)

const JobKeyPrefix = "label_job:"

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrStoreDisabled = errors.New("job store not configured")
)

func jobKey(id string) string {
	return JobKeyPrefix + id
}

func (s *StorageService) SaveJob(ctx context.Context, job *models.LabelJob) error {
	if s.redisClient == nil {
		return ErrStoreDisabled
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := s.redisClient.Set(ctx, jobKey(job.ID), data, s.jobDuration).Err(); err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

func (s *StorageService) GetJob(ctx context.Context, id string) (*models.LabelJob, error) {
	if s.redisClient == nil {
		return nil, ErrStoreDisabled
	}

	data, err := s.redisClient.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	var job models.LabelJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}
