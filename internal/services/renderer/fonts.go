package renderer

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const fallbackFontName = "goregular"

// fontSource holds one parsed font and hands out faces at any pixel size.
// The parsed font is read-only and safe to share between requests.
type fontSource struct {
	parsed   *opentype.Font
	name     string
	fallback bool
}

// loadFont parses the font at path. A missing or unreadable font is not an
// error: the embedded Go Regular face is used instead.
func loadFont(path string, logger *zap.Logger) (*fontSource, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			parsed, perr := opentype.Parse(data)
			if perr == nil {
				return &fontSource{parsed: parsed, name: path}, nil
			}
			err = perr
		}
		logger.Warn("Font unavailable, using default",
			zap.String("font_path", path),
			zap.Error(err))
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse default font: %w", err)
	}
	return &fontSource{parsed: parsed, name: fallbackFontName, fallback: true}, nil
}

// Face returns a face where one point equals one pixel.
func (f *fontSource) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.1fpx: %w", size, err)
	}
	return face, nil
}

// Measure returns the ink bounding box of text at size pixels.
func (f *fontSource) Measure(text string, size float64) (float64, float64, error) {
	face, err := f.Face(size)
	if err != nil {
		return 0, 0, err
	}
	defer face.Close()

	w, h := inkSize(face, text)
	return w, h, nil
}

func inkSize(face font.Face, text string) (float64, float64) {
	bounds, _ := font.BoundString(face, text)
	w := float64(bounds.Max.X-bounds.Min.X) / 64
	h := float64(bounds.Max.Y-bounds.Min.Y) / 64
	return w, h
}
