package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/config"
	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) (*StorageService, *config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Render: config.RenderConfig{
			ImageDir:  filepath.Join(root, "output_can"),
			PublicDir: filepath.Join(root, "public"),
		},
		Redis: config.RedisConfig{CacheTTL: time.Hour, JobTTL: time.Hour},
	}

	s, err := NewStorageService(cfg, zap.NewNop())
	require.NoError(t, err)
	return s, cfg
}

func touch(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestNewStorageService_CreatesDirectories(t *testing.T) {
	s, cfg := newTestStorage(t)

	assert.DirExists(t, cfg.Render.ImageDir)
	assert.DirExists(t, cfg.Render.PublicDir)
	assert.False(t, s.CacheEnabled())
	assert.False(t, s.MirrorEnabled())
	assert.NoError(t, s.Close())
}

func TestNewStorageService_OptionalBackends(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		Render: config.RenderConfig{
			ImageDir:  filepath.Join(root, "img"),
			PublicDir: filepath.Join(root, "pub"),
		},
		Redis:    config.RedisConfig{Addr: "localhost:6379"},
		Supabase: config.SupabaseConfig{URL: "https://example.supabase.co", KEY: "key", BUCKET: "labels"},
	}

	s, err := NewStorageService(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.CacheEnabled())
	assert.True(t, s.MirrorEnabled())
}

func TestCleanupOlderThan(t *testing.T) {
	s, cfg := newTestStorage(t)
	old := time.Now().Add(-100 * time.Hour)
	fresh := time.Now().Add(-time.Hour)

	oldPNG := filepath.Join(cfg.Render.ImageDir, "JUAN+400.png")
	oldPDF := filepath.Join(cfg.Render.PublicDir, "JUAN_400_abc123.pdf")
	freshPDF := filepath.Join(cfg.Render.PublicDir, "ANA_500_def456.pdf")
	oldOther := filepath.Join(cfg.Render.PublicDir, "robots.txt")

	touch(t, oldPNG, old)
	touch(t, oldPDF, old)
	touch(t, freshPDF, fresh)
	touch(t, oldOther, old)

	deleted, err := s.CleanupOlderThan(context.Background(), 72*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 2, deleted)
	assert.NoFileExists(t, oldPNG)
	assert.NoFileExists(t, oldPDF)
	assert.FileExists(t, freshPDF)
	assert.FileExists(t, oldOther)
}

func TestCleanupOlderThan_Cancelled(t *testing.T) {
	s, cfg := newTestStorage(t)
	touch(t, filepath.Join(cfg.Render.PublicDir, "A_400_000000.pdf"), time.Now().Add(-100*time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CleanupOlderThan(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartSweeper(t *testing.T) {
	s, cfg := newTestStorage(t)
	expired := filepath.Join(cfg.Render.PublicDir, "OLD_500_aaaaaa.pdf")
	touch(t, expired, time.Now().Add(-2*time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartSweeper(ctx, 10*time.Millisecond, time.Hour)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(expired)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartSweeper_Disabled(t *testing.T) {
	s, cfg := newTestStorage(t)
	expired := filepath.Join(cfg.Render.PublicDir, "OLD_500_aaaaaa.pdf")
	touch(t, expired, time.Now().Add(-2*time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartSweeper(ctx, 10*time.Millisecond, 0)

	time.Sleep(50 * time.Millisecond)
	assert.FileExists(t, expired)
}

func TestHealthCheck_LocalOnly(t *testing.T) {
	s, cfg := newTestStorage(t)

	status := s.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status["storage"])
	assert.Equal(t, notConfigured, status["redis"])
	assert.Equal(t, notConfigured, status["supabase"])

	require.NoError(t, os.RemoveAll(cfg.Render.PublicDir))
	status = s.HealthCheck(context.Background())
	assert.Contains(t, status["storage"], "unhealthy")
}

func TestGenerateCacheKey(t *testing.T) {
	a := GenerateCacheKey("JUAN", models.Variant400)

	assert.Equal(t, a, GenerateCacheKey("  JUAN ", models.Variant400))
	assert.NotEqual(t, a, GenerateCacheKey("JUAN", models.Variant500))
	assert.NotEqual(t, a, GenerateCacheKey("JUANA", models.Variant400))
	assert.Regexp(t, "^label_cache:[0-9a-f]{64}$", a)
}

func TestCache_DisabledIsNoop(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	s.SetResult(ctx, "JUAN", models.Variant400, &models.RenderResult{Success: true, PDFPath: "/tmp/x.pdf"})
	res, ok := s.GetResult(ctx, "JUAN", models.Variant400)

	assert.False(t, ok)
	assert.Nil(t, res)
}

func TestDecodeCachedResult(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "JUAN_400_abc123.pdf")
	touch(t, existing, time.Now())

	encode := func(r models.RenderResult) []byte {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		return data
	}

	res, ok := decodeCachedResult(encode(models.RenderResult{Success: true, PDFPath: existing, PDFURL: "/public/JUAN_400_abc123.pdf"}))
	require.True(t, ok)
	assert.Equal(t, "/public/JUAN_400_abc123.pdf", res.PDFURL)

	_, ok = decodeCachedResult(encode(models.RenderResult{Success: true, PDFPath: filepath.Join(dir, "gone.pdf")}))
	assert.False(t, ok)

	_, ok = decodeCachedResult(encode(models.RenderResult{Success: false, PDFPath: existing}))
	assert.False(t, ok)

	_, ok = decodeCachedResult([]byte("{not json"))
	assert.False(t, ok)
}

func TestJobs_DisabledStore(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	err := s.SaveJob(ctx, &models.LabelJob{ID: "job-1"})
	assert.ErrorIs(t, err, ErrStoreDisabled)

	_, err = s.GetJob(ctx, "job-1")
	assert.ErrorIs(t, err, ErrStoreDisabled)
}

func TestUpload_MirrorDisabled(t *testing.T) {
	s, cfg := newTestStorage(t)
	path := filepath.Join(cfg.Render.PublicDir, "JUAN_400_abc123.pdf")
	touch(t, path, time.Now())

	_, err := s.UploadPDF(context.Background(), path, "JUAN_400_abc123.pdf")
	assert.ErrorIs(t, err, errMirrorDisabled)

	_, err = s.UploadPDF(context.Background(), filepath.Join(cfg.Render.PublicDir, "missing.pdf"), "missing.pdf")
	assert.Error(t, err)
}
