package storage

import (
	"fmt"
	"os"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// StorageService owns everything the labels leave behind: the local output
// directories, the optional redis cache/job store and the optional
// supabase mirror bucket.
type StorageService struct {
	imageDir      string
	publicDir     string
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	cacheDuration time.Duration
	jobDuration   time.Duration
	logger        *zap.Logger
}

func NewStorageService(cfg *config.Config, logger *zap.Logger) (*StorageService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, dir := range []string{cfg.Render.ImageDir, cfg.Render.PublicDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	s := &StorageService{
		imageDir:      cfg.Render.ImageDir,
		publicDir:     cfg.Render.PublicDir,
		bucket:        cfg.Supabase.BUCKET,
		cacheDuration: cfg.Redis.CacheTTL,
		jobDuration:   cfg.Redis.JobTTL,
		logger:        logger,
	}

	if cfg.SupabaseEnabled() {
		s.sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
	}

	if cfg.RedisEnabled() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}

	return s, nil
}

func (s *StorageService) CacheEnabled() bool {
	return s.redisClient != nil
}

func (s *StorageService) MirrorEnabled() bool {
	return s.sbClient != nil
}

func (s *StorageService) Close() error {
	if s.redisClient != nil {
		return s.redisClient.Close()
	}
	return nil
}
