package storage

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CacheKeyPrefix = "label_cache:"
)

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	if s.redisClient == nil {
		return nil, nil
	}

	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GenerateCacheKey hashes the trimmed text and variant into a redis key.
func GenerateCacheKey(text string, variant models.Variant) string {
	combined := strings.TrimSpace(text) + "|" + string(variant)
	hash := sha256.Sum256([]byte(combined))
	return fmt.Sprintf("%s%x", CacheKeyPrefix, hash)
}

// GetResult returns a previously rendered label, as long as its PDF is
// still on disk.
func (s *StorageService) GetResult(ctx context.Context, text string, variant models.Variant) (*models.RenderResult, bool) {
	cacheKey := GenerateCacheKey(text, variant)

	data, err := s.GetFromCache(ctx, cacheKey)
	if err != nil {
		s.logger.Warn("Failed to read label cache", zap.String("cache_key", cacheKey), zap.Error(err))
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	result, ok := decodeCachedResult(data)
	if !ok {
		s.logger.Debug("Discarding stale label cache entry", zap.String("cache_key", cacheKey))
		return nil, false
	}
	return result, true
}

func (s *StorageService) SetResult(ctx context.Context, text string, variant models.Variant, result *models.RenderResult) {
	if result == nil || !result.Success {
		return
	}

	cacheKey := GenerateCacheKey(text, variant)
	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("Failed to marshal render result", zap.Error(err))
		return
	}
	if err := s.SetCache(ctx, cacheKey, data); err != nil {
		s.logger.Warn("Failed to cache render result", zap.String("cache_key", cacheKey), zap.Error(err))
	}
}

func decodeCachedResult(data []byte) (*models.RenderResult, bool) {
	var result models.RenderResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	if !result.Success || result.PDFPath == "" {
		return nil, false
	}
	if _, err := os.Stat(result.PDFPath); err != nil {
		return nil, false
	}
	return &result, true
}
