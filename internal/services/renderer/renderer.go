package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/albertogalvisvml/labelpdfapp/pkg/utils"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

const (
	DefaultDPI          = 300
	DefaultPublicPrefix = "/public"

	scaleFactor     = 2
	initialFontSize = 90
	minFontSize     = 8
	fontStep        = 2
	fontInflation   = 1.15
	widthRatio      = 0.95
	heightRatio     = 0.9
	heightPadding   = 10
	verticalBias    = 5
	borderThickness = 8
	blurSigma       = 0.5
	suffixLength    = 6

	pdfAuthor  = "Sistema de Generación de Etiquetas"
	pdfCreator = "labelpdfapp"
)

type Options struct {
	AssetDir     string
	FontPath     string
	ImageDir     string
	PublicDir    string
	PublicPrefix string
	DPI          float64
	Logger       *zap.Logger
}

// Renderer stamps text onto a label asset and wraps the result in a PDF.
// It keeps no per-request state and is safe for concurrent use.
type Renderer struct {
	opts   Options
	font   *fontSource
	logger *zap.Logger
	suffix func() string
}

func New(opts Options) (*Renderer, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if opts.PublicPrefix == "" {
		opts.PublicPrefix = DefaultPublicPrefix
	}
	opts.PublicPrefix = "/" + strings.Trim(opts.PublicPrefix, "/")

	f, err := loadFont(opts.FontPath, opts.Logger)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		opts:   opts,
		font:   f,
		logger: opts.Logger,
		suffix: func() string { return utils.RandomSuffix(suffixLength) },
	}, nil
}

// FontName is the font file in use, or "goregular" for the embedded fallback.
func (r *Renderer) FontName() string {
	return r.font.name
}

// Render produces the PNG and PDF for one variant. Failures, including
// panics, come back as an unsuccessful result rather than an error.
func (r *Renderer) Render(ctx context.Context, text string, variant models.Variant) (result *models.RenderResult) {
	start := time.Now()
	text = strings.TrimSpace(text)

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Render panicked",
				zap.String("variant", string(variant)),
				zap.Any("panic", rec),
				zap.Stack("stack"))
			result = failedResult(variant, NewRenderError(ErrCodeUnknown, fmt.Sprintf("unexpected failure: %v", rec), nil))
		}
	}()

	res, err := r.render(ctx, text, variant)
	if err != nil {
		r.logger.Error("Label render failed",
			zap.String("variant", string(variant)),
			zap.String("code", ErrorCode(err)),
			zap.Error(err))
		return failedResult(variant, err)
	}

	r.logger.Info("Label rendered",
		zap.String("variant", string(res.Variant)),
		zap.String("pdf", res.PDFPath),
		zap.Int("font_size", res.FontSize),
		zap.Duration("took", time.Since(start)))
	return res
}

func (r *Renderer) render(ctx context.Context, text string, variant models.Variant) (*models.RenderResult, error) {
	if text == "" {
		return nil, NewRenderError(ErrCodeInvalidInput, "text must not be empty", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeUnknown, "render cancelled", err)
	}

	layout, known := LayoutFor(variant)
	if !known {
		r.logger.Warn("Unknown label variant, using the 500 text area",
			zap.String("variant", string(variant)),
			zap.String("asset", layout.Asset))
	}

	base, err := loadBase(filepath.Join(r.opts.AssetDir, layout.Asset))
	if err != nil {
		return nil, err
	}

	composed, fontSize, err := r.compose(base, text, layout)
	if err != nil {
		return nil, err
	}

	pngPath, err := r.savePNG(composed, text, layout.Variant)
	if err != nil {
		return nil, err
	}

	bounds := composed.Bounds()
	pageW, pageH := PageSize(bounds.Dx(), bounds.Dy(), r.opts.DPI)

	pdfName := utils.PDFFilename(text, string(layout.Variant), r.suffix())
	pdfPath, err := r.savePDF(pngPath, pdfName, pageW, pageH, text, layout.Variant)
	if err != nil {
		return nil, err
	}

	return &models.RenderResult{
		Success:      true,
		Variant:      layout.Variant,
		ImagePath:    pngPath,
		PDFPath:      pdfPath,
		PDFURL:       r.opts.PublicPrefix + "/" + url.PathEscape(pdfName),
		Filename:     pdfName,
		FontSize:     fontSize,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		PageWidthPt:  pageW,
		PageHeightPt: pageH,
	}, nil
}

func loadBase(path string) (*image.NRGBA, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewRenderError(ErrCodeAssetNotFound, fmt.Sprintf("base image not found at %s", path), err)
		}
		return nil, NewRenderError(ErrCodeAssetNotFound, fmt.Sprintf("base image unreadable at %s", path), err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to decode base image", err)
	}
	return imaging.Clone(img), nil
}

// compose draws the bordered text on a double-resolution layer and blends
// it back onto the base at its native size.
func (r *Renderer) compose(base *image.NRGBA, text string, layout Layout) (*image.NRGBA, int, error) {
	bw, bh := base.Bounds().Dx(), base.Bounds().Dy()
	rect := layout.Rect(scaleFactor)

	fitted, err := FitFontSize(r.font, text, FitParams{
		Start:     initialFontSize * scaleFactor,
		Floor:     minFontSize,
		Step:      fontStep,
		MaxWidth:  float64(rect.Dx()) * widthRatio,
		MaxHeight: float64(rect.Dy())*heightRatio + heightPadding*scaleFactor,
	})
	if err != nil {
		return nil, 0, NewRenderError(ErrCodeRenderFailed, "failed to fit font size", err)
	}
	size := inflate(fitted)

	face, err := r.font.Face(float64(size))
	if err != nil {
		return nil, 0, NewRenderError(ErrCodeRenderFailed, "failed to load font face", err)
	}
	defer face.Close()

	dc := gg.NewContext(bw*scaleFactor, bh*scaleFactor)
	dc.SetFontFace(face)

	x, y := textOrigin(face, text, rect)
	drawBorderedText(dc, text, x, y, borderThickness*scaleFactor)

	layer := imaging.Blur(dc.Image(), blurSigma)
	layer = imaging.Resize(layer, bw, bh, imaging.Lanczos)

	return imaging.Overlay(base, layer, image.Pt(0, 0), 1.0), size, nil
}

// textOrigin is the baseline origin that centres the ink box of text in
// rect, lifted by the vertical bias.
func textOrigin(face font.Face, text string, rect image.Rectangle) (float64, float64) {
	bounds, _ := font.BoundString(face, text)
	minX := float64(bounds.Min.X) / 64
	minY := float64(bounds.Min.Y) / 64
	w, h := inkSize(face, text)

	cx := float64(rect.Min.X + rect.Dx()/2)
	cy := float64(rect.Min.Y+rect.Dy()/2) - verticalBias*scaleFactor

	return math.Round(cx - w/2 - minX), math.Round(cy - h/2 - minY)
}

func (r *Renderer) savePNG(img image.Image, text string, variant models.Variant) (string, error) {
	if err := os.MkdirAll(r.opts.ImageDir, 0755); err != nil {
		return "", NewRenderError(ErrCodeSaveFailed, "failed to create image directory", err)
	}

	path := filepath.Join(r.opts.ImageDir, utils.ImageFilename(text, string(variant)))
	if err := imaging.Save(img, path); err != nil {
		return "", NewRenderError(ErrCodeSaveFailed, "failed to save image", err)
	}
	return path, nil
}

func (r *Renderer) savePDF(pngPath, name string, pageW, pageH float64, text string, variant models.Variant) (string, error) {
	if err := os.MkdirAll(r.opts.PublicDir, 0755); err != nil {
		return "", NewRenderError(ErrCodeSaveFailed, "failed to create public directory", err)
	}

	path := filepath.Join(r.opts.PublicDir, name)
	err := writePDF(pngPath, path, pageW, pageH, pdfMeta{
		Title:   "Etiqueta " + text,
		Author:  pdfAuthor,
		Subject: "Etiqueta personalizada " + string(variant),
		Creator: pdfCreator,
	})
	if err != nil {
		return "", NewRenderError(ErrCodeSaveFailed, "failed to save pdf", err)
	}
	return path, nil
}

func failedResult(variant models.Variant, err error) *models.RenderResult {
	return &models.RenderResult{
		Success:   false,
		Variant:   variant,
		ErrorCode: ErrorCode(err),
		Error:     err.Error(),
	}
}
