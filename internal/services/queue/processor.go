package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"go.uber.org/zap"
)

var errEmptyName = errors.New("nameTyped is required")

// processJob runs the generator for a job and records every status change.
func (q *QueueService) processJob(ctx context.Context, job *models.LabelJob) {
	q.updateJob(ctx, job, models.StatusProcessing)

	if strings.TrimSpace(job.Request.NameTyped) == "" {
		job.Error = errEmptyName.Error()
		q.updateJob(ctx, job, models.StatusFailed)
		return
	}

	resp := q.generator.Generate(ctx, job.Request, job.BaseURL)
	job.Result = resp

	if resp == nil || !resp.Success {
		job.Error = firstFailure(resp).Error()
		q.updateJob(ctx, job, models.StatusFailed)
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.String("error", job.Error))
		return
	}

	q.updateJob(ctx, job, models.StatusCompleted)
	q.logger.Info("Job completed successfully", zap.String("job_id", job.ID))
}

func (q *QueueService) updateJob(ctx context.Context, job *models.LabelJob, status string) {
	job.Status = status
	job.UpdatedAt = time.Now().UTC()

	if q.store == nil {
		return
	}
	if err := q.store.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to store job status",
			zap.String("job_id", job.ID),
			zap.String("status", status),
			zap.Error(err))
	}
}

func firstFailure(resp *models.GenerateResponse) error {
	if resp == nil {
		return errors.New("generator returned no response")
	}
	for _, r := range resp.Results {
		if r.Status == models.OutcomeFailed {
			return fmt.Errorf("%s: %s", r.Type, r.Error)
		}
	}
	return errors.New("label generation failed")
}
