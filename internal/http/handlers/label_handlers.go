package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/renderer"
	"github.com/albertogalvisvml/labelpdfapp/internal/services/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LabelGenerator interface {
	Generate(ctx context.Context, req models.GenerateRequest, baseURL string) *models.GenerateResponse
}

type JobQueue interface {
	Submit(ctx context.Context, req models.GenerateRequest, baseURL string) (*models.LabelJob, error)
	HealthCheck() string
	Stats() (*models.QueueStats, error)
}

type JobStore interface {
	GetJob(ctx context.Context, id string) (*models.LabelJob, error)
}

type StorageHealth interface {
	HealthCheck(ctx context.Context) map[string]string
}

type AssetChecker interface {
	CheckAssets() error
}

type LabelHandler struct {
	generator LabelGenerator
	queue     JobQueue
	jobs      JobStore
	storage   StorageHealth
	assets    AssetChecker
	logger    *zap.Logger

	trustedProxies []*net.IPNet
}

// NewLabelHandler wires the label endpoints. queue and jobs may be nil when
// RabbitMQ or Redis are not configured.
func NewLabelHandler(
	generator LabelGenerator,
	queue JobQueue,
	jobs JobStore,
	storage StorageHealth,
	logger *zap.Logger,
) *LabelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelHandler{
		generator: generator,
		queue:     queue,
		jobs:      jobs,
		storage:   storage,
		logger:    logger,
	}
}

// WithAssetCheck adds the label asset check to /health.
func (h *LabelHandler) WithAssetCheck(assets AssetChecker) *LabelHandler {
	h.assets = assets
	return h
}

// GenerateLabels renders the 400 and 500 labels for an order and responds
// with absolute PDF URLs.
func (h *LabelHandler) GenerateLabels(c *gin.Context) {
	req, ok := h.bindGenerateRequest(c)
	if !ok {
		return
	}

	resp := h.generator.Generate(c.Request.Context(), req, h.requestBaseURL(c))
	c.JSON(http.StatusOK, resp)
}

func (h *LabelHandler) GenerateLabelsAsync(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Async generation is not configured")
		return
	}

	req, ok := h.bindGenerateRequest(c)
	if !ok {
		return
	}

	job, err := h.queue.Submit(c.Request.Context(), req, h.requestBaseURL(c))
	if err != nil {
		h.logger.Error("Failed to enqueue label job",
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to enqueue label job")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"jobId":  job.ID,
		"status": job.Status,
	})
}

func (h *LabelHandler) GetJob(c *gin.Context) {
	if h.jobs == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Job store is not configured")
		return
	}

	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, storage.ErrJobNotFound):
		h.respondError(c, http.StatusNotFound, "Job not found")
		return
	case errors.Is(err, storage.ErrStoreDisabled):
		h.respondError(c, http.StatusServiceUnavailable, "Job store is not configured")
		return
	case err != nil:
		h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}

	c.JSON(http.StatusOK, job)
}

// HealthCheck
func (h *LabelHandler) HealthCheck(c *gin.Context) {
	services := map[string]string{}
	if h.storage != nil {
		services = h.storage.HealthCheck(c.Request.Context())
	}
	var queueStats *models.QueueStats
	if h.queue == nil {
		services["queue"] = notConfigured
	} else {
		services["queue"] = h.queue.HealthCheck()
		stats, err := h.queue.Stats()
		if err != nil {
			h.logger.Warn("Failed to read queue stats", zap.Error(err))
		} else {
			queueStats = stats
		}
	}
	if h.assets != nil {
		services["assets"] = "healthy"
		if err := h.assets.CheckAssets(); err != nil {
			services["assets"] = "unhealthy: " + err.Error()
		}
	}

	overall := calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
			Queue:     queueStats,
		},
	})
}

func (h *LabelHandler) ListVariants(c *gin.Context) {
	layouts := renderer.Layouts()
	infos := make([]models.LayoutInfo, 0, len(layouts))
	for _, l := range layouts {
		infos = append(infos, l.Info())
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    infos,
	})
}

func (h *LabelHandler) bindGenerateRequest(c *gin.Context) (models.GenerateRequest, bool) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}

	req.NameTyped = strings.TrimSpace(req.NameTyped)
	if req.NameTyped == "" {
		h.respondError(c, http.StatusBadRequest, "nameTyped is required")
		return req, false
	}
	return req, true
}
