package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

var outputExtensions = map[string]bool{
	".png": true,
	".pdf": true,
}

// CleanupOlderThan removes generated PNGs and PDFs last modified before
// now-age from both output directories. It returns how many were removed.
func (s *StorageService) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deleted := 0

	for _, dir := range []string{s.imageDir, s.publicDir} {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !outputExtensions[filepath.Ext(path)] {
				return nil
			}

			info, err := d.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				return nil
			}
			if err := os.Remove(path); err == nil {
				deleted++
				s.logger.Debug("Deleted expired output", zap.String("path", path))
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return deleted, err
			}
			s.logger.Warn("Cleanup walk failed", zap.String("dir", dir), zap.Error(err))
		}
	}

	s.logger.Info("Output cleanup completed",
		zap.Int("deleted", deleted),
		zap.Duration("age", age))

	return deleted, nil
}

// StartSweeper runs CleanupOlderThan every interval until ctx is done.
// A non-positive age or interval disables the sweeper.
func (s *StorageService) StartSweeper(ctx context.Context, interval, age time.Duration) {
	if interval <= 0 || age <= 0 {
		s.logger.Info("Output sweeper disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.logger.Info("Output sweeper started",
			zap.Duration("interval", interval),
			zap.Duration("retention", age))

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Output sweeper stopping")
				return
			case <-ticker.C:
				if _, err := s.CleanupOlderThan(ctx, age); err != nil {
					s.logger.Warn("Output sweep failed", zap.Error(err))
				}
			}
		}
	}()
}
