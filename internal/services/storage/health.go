package storage

import (
	"context"
	"fmt"
	"os"

	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

const notConfigured = "not configured"

// HealthCheck checks the output dirs, Redis and Supabase
func (s *StorageService) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	status["storage"] = "healthy"
	for _, dir := range []string{s.imageDir, s.publicDir} {
		if err := checkDir(dir); err != nil {
			status["storage"] = "unhealthy: " + err.Error()
			break
		}
	}

	// Redis
	if s.redisClient == nil {
		status["redis"] = notConfigured
	} else if err := s.redisClient.Ping(ctx).Err(); err != nil {
		status["redis"] = "unhealthy: " + err.Error()
	} else {
		status["redis"] = "healthy"
	}

	// Supabase Storage check
	if s.sbClient == nil {
		status["supabase"] = notConfigured
	} else if _, err := s.sbClient.ListFiles(s.bucket, "", storage_go.FileSearchOptions{}); err != nil {
		s.logger.Warn("Supabase health check failed", zap.Error(err))
		status["supabase"] = "unhealthy: " + err.Error()
	} else {
		status["supabase"] = "healthy"
	}

	return status
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
