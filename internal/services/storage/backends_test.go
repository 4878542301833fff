package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/config"
	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "label-pdfs"

// newRedisStorage returns a StorageService backed by an in-memory redis.
func newRedisStorage(t *testing.T) (*StorageService, *miniredis.Miniredis, *config.Config) {
	t.Helper()
	mr := miniredis.RunT(t)
	root := t.TempDir()
	cfg := &config.Config{
		Render: config.RenderConfig{
			ImageDir:  filepath.Join(root, "output_can"),
			PublicDir: filepath.Join(root, "public"),
		},
		Redis: config.RedisConfig{
			Addr:     mr.Addr(),
			CacheTTL: time.Hour,
			JobTTL:   24 * time.Hour,
		},
	}

	s, err := NewStorageService(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.True(t, s.CacheEnabled())
	return s, mr, cfg
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3\n"), 0644))
	return path
}

func TestResultCache_RoundTrip(t *testing.T) {
	s, mr, cfg := newRedisStorage(t)
	ctx := context.Background()

	pdf := writePDF(t, cfg.Render.PublicDir, "JUAN_400_a1b2c3.pdf")
	result := &models.RenderResult{
		Success:  true,
		Variant:  models.Variant400,
		PDFPath:  pdf,
		PDFURL:   "/public/JUAN_400_a1b2c3.pdf",
		Filename: "JUAN_400_a1b2c3.pdf",
		FontSize: 206,
	}

	_, ok := s.GetResult(ctx, "JUAN", models.Variant400)
	assert.False(t, ok)

	s.SetResult(ctx, " JUAN ", models.Variant400, result)

	key := GenerateCacheKey("JUAN", models.Variant400)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	got, ok := s.GetResult(ctx, "JUAN", models.Variant400)
	require.True(t, ok)
	assert.Equal(t, result, got)

	_, ok = s.GetResult(ctx, "JUAN", models.Variant500)
	assert.False(t, ok)
}

func TestResultCache_Expires(t *testing.T) {
	s, mr, cfg := newRedisStorage(t)
	ctx := context.Background()

	pdf := writePDF(t, cfg.Render.PublicDir, "ANA_500_ffffff.pdf")
	s.SetResult(ctx, "ANA", models.Variant500, &models.RenderResult{Success: true, PDFPath: pdf})

	mr.FastForward(time.Hour + time.Second)

	_, ok := s.GetResult(ctx, "ANA", models.Variant500)
	assert.False(t, ok)
}

func TestResultCache_MissingPDFIsStale(t *testing.T) {
	s, _, cfg := newRedisStorage(t)
	ctx := context.Background()

	pdf := writePDF(t, cfg.Render.PublicDir, "ANA_500_ffffff.pdf")
	s.SetResult(ctx, "ANA", models.Variant500, &models.RenderResult{Success: true, PDFPath: pdf})
	require.NoError(t, os.Remove(pdf))

	_, ok := s.GetResult(ctx, "ANA", models.Variant500)
	assert.False(t, ok)
}

func TestResultCache_SkipsFailures(t *testing.T) {
	s, mr, _ := newRedisStorage(t)

	s.SetResult(context.Background(), "JUAN", models.Variant400, &models.RenderResult{Error: "disk full"})
	s.SetResult(context.Background(), "JUAN", models.Variant400, nil)

	assert.False(t, mr.Exists(GenerateCacheKey("JUAN", models.Variant400)))
}

func TestResultCache_RedisDown(t *testing.T) {
	s, mr, _ := newRedisStorage(t)
	mr.Close()

	_, ok := s.GetResult(context.Background(), "JUAN", models.Variant400)
	assert.False(t, ok)
}

func TestJobStore_RoundTrip(t *testing.T) {
	s, mr, _ := newRedisStorage(t)
	ctx := context.Background()

	job := &models.LabelJob{
		ID:        "0f8fad5b-d9cb-469f-a165-70867728950e",
		Request:   models.GenerateRequest{NameTyped: "JUAN", OrderID: "123"},
		BaseURL:   "http://example.com/",
		Status:    models.StatusCompleted,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 2, 0, time.UTC),
		Result: &models.GenerateResponse{
			OrderID: "123",
			Success: true,
			Results: []models.LabelOutcome{{Type: "400ml", Status: models.OutcomeSuccess, PDFURL: "http://example.com/public/a.pdf"}},
		},
	}
	require.NoError(t, s.SaveJob(ctx, job))

	key := JobKeyPrefix + job.ID
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 24*time.Hour, mr.TTL(key))

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job, got)

	job.Status = models.StatusFailed
	job.Error = "400ml: base image not found"
	require.NoError(t, s.SaveJob(ctx, job))
	got, err = s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, "400ml: base image not found", got.Error)
}

func TestJobStore_NotFound(t *testing.T) {
	s, _, _ := newRedisStorage(t)

	job, err := s.GetJob(context.Background(), "missing")
	assert.Nil(t, job)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobStore_CorruptEntry(t *testing.T) {
	s, mr, _ := newRedisStorage(t)
	require.NoError(t, mr.Set(JobKeyPrefix+"bad", "{not json"))

	_, err := s.GetJob(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrJobNotFound)
}

func TestHealthCheck_Redis(t *testing.T) {
	s, mr, _ := newRedisStorage(t)

	status := s.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status["redis"])

	mr.Close()
	status = s.HealthCheck(context.Background())
	assert.Contains(t, status["redis"], "unhealthy")
}

// bucketServer stands in for the supabase storage API and records uploads.
type bucketServer struct {
	mu      sync.Mutex
	method  string
	path    string
	auth    string
	body    []byte
	uploads int
}

func (b *bucketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.method = r.Method
	b.path = r.URL.Path
	b.auth = r.Header.Get("Authorization")
	b.body = body
	b.uploads++
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"Key":"`+testBucket+`/labels/JUAN_400_a1b2c3.pdf"}`)
}

func newMirrorStorage(t *testing.T) (*StorageService, *bucketServer, *httptest.Server, *config.Config) {
	t.Helper()
	bucket := &bucketServer{}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	root := t.TempDir()
	cfg := &config.Config{
		Render: config.RenderConfig{
			ImageDir:  filepath.Join(root, "output_can"),
			PublicDir: filepath.Join(root, "public"),
		},
		Supabase: config.SupabaseConfig{URL: srv.URL, KEY: "service-key", BUCKET: testBucket},
	}

	s, err := NewStorageService(cfg, zap.NewNop())
	require.NoError(t, err)
	require.True(t, s.MirrorEnabled())
	return s, bucket, srv, cfg
}

func TestUploadPDF(t *testing.T) {
	s, bucket, srv, cfg := newMirrorStorage(t)
	pdf := writePDF(t, cfg.Render.PublicDir, "JUAN_400_a1b2c3.pdf")

	url, err := s.UploadPDF(context.Background(), pdf, "JUAN_400_a1b2c3.pdf")
	require.NoError(t, err)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	assert.Equal(t, 1, bucket.uploads)
	assert.Equal(t, http.MethodPost, bucket.method)
	assert.Equal(t, "/storage/v1/object/"+testBucket+"/labels/JUAN_400_a1b2c3.pdf", bucket.path)
	assert.Contains(t, bucket.auth, "service-key")
	assert.Contains(t, string(bucket.body), "%PDF-1.3")

	assert.Equal(t, srv.URL+"/storage/v1/object/public/"+testBucket+"/labels/JUAN_400_a1b2c3.pdf", url)
}

func TestUploadPDF_MissingFile(t *testing.T) {
	s, bucket, _, cfg := newMirrorStorage(t)

	_, err := s.UploadPDF(context.Background(), filepath.Join(cfg.Render.PublicDir, "gone.pdf"), "gone.pdf")
	require.Error(t, err)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	assert.Zero(t, bucket.uploads)
}

func TestUpload_CancelledContext(t *testing.T) {
	s, bucket, _, cfg := newMirrorStorage(t)
	pdf := writePDF(t, cfg.Render.PublicDir, "JUAN_400_a1b2c3.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.UploadPDF(ctx, pdf, "JUAN_400_a1b2c3.pdf")
	assert.ErrorIs(t, err, context.Canceled)

	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	assert.Zero(t, bucket.uploads)
}
