package labels

import (
	"context"
	"strings"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"go.uber.org/zap"
)

type Renderer interface {
	Render(ctx context.Context, text string, variant models.Variant) *models.RenderResult
}

type ResultCache interface {
	GetResult(ctx context.Context, text string, variant models.Variant) (*models.RenderResult, bool)
	SetResult(ctx context.Context, text string, variant models.Variant, result *models.RenderResult)
}

type Mirror interface {
	UploadPDF(ctx context.Context, localPath, filename string) (string, error)
}

// Generator renders every label variant for an order and folds the
// per-variant outcomes into one response.
type Generator struct {
	renderer Renderer
	cache    ResultCache
	mirror   Mirror
	variants []models.Variant
	logger   *zap.Logger
}

type Option func(*Generator)

func WithCache(cache ResultCache) Option {
	return func(g *Generator) { g.cache = cache }
}

func WithMirror(mirror Mirror) Option {
	return func(g *Generator) { g.mirror = mirror }
}

func WithVariants(variants ...models.Variant) Option {
	return func(g *Generator) { g.variants = variants }
}

func NewGenerator(renderer Renderer, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		renderer: renderer,
		variants: models.Variants,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders each variant in order. Success is true only if every
// variant succeeded; a failed variant never aborts the others.
func (g *Generator) Generate(ctx context.Context, req models.GenerateRequest, baseURL string) *models.GenerateResponse {
	text := strings.TrimSpace(req.NameTyped)
	resp := &models.GenerateResponse{
		OrderID: req.OrderID,
		Results: make([]models.LabelOutcome, 0, len(g.variants)),
		Success: true,
	}

	for _, variant := range g.variants {
		result := g.RenderVariant(ctx, text, variant)

		outcome := models.LabelOutcome{Type: variant.Type()}
		if result.Success {
			outcome.Status = models.OutcomeSuccess
			outcome.PDFURL = AbsoluteURL(baseURL, result.PDFURL)
			outcome.RemoteURL = result.RemoteURL
		} else {
			outcome.Status = models.OutcomeFailed
			outcome.Error = result.Error
			if outcome.Error == "" {
				outcome.Error = "unknown error"
			}
			resp.Success = false
		}
		resp.Results = append(resp.Results, outcome)
	}

	g.logger.Info("Labels generated",
		zap.String("order_id", req.OrderID),
		zap.Bool("success", resp.Success),
		zap.Int("variants", len(resp.Results)))

	return resp
}

// RenderVariant renders a single variant, going through the cache and the
// mirror when they are configured.
func (g *Generator) RenderVariant(ctx context.Context, text string, variant models.Variant) *models.RenderResult {
	if g.cache != nil {
		if cached, ok := g.cache.GetResult(ctx, text, variant); ok {
			g.logger.Debug("Label cache hit", zap.String("variant", string(variant)))
			return cached
		}
	}

	result := g.renderer.Render(ctx, text, variant)
	if result == nil {
		return &models.RenderResult{Variant: variant, Error: "renderer returned no result"}
	}
	if !result.Success {
		return result
	}

	if g.mirror != nil {
		remote, err := g.mirror.UploadPDF(ctx, result.PDFPath, result.Filename)
		if err != nil {
			g.logger.Warn("Failed to mirror label PDF",
				zap.String("pdf", result.PDFPath),
				zap.Error(err))
		} else {
			result.RemoteURL = remote
		}
	}

	if g.cache != nil {
		g.cache.SetResult(ctx, text, variant, result)
	}
	return result
}

// AbsoluteURL joins a request base URL with a root-relative path.
// Paths that are already absolute URLs are returned unchanged.
func AbsoluteURL(baseURL, rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	if baseURL == "" {
		return rel
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(rel, "/")
}
