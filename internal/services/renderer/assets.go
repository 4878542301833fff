package renderer

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// CheckAssets verifies that every label asset decodes and that its text
// area lies inside the image.
func (r *Renderer) CheckAssets() error {
	var errs []error
	for _, l := range Layouts() {
		if err := checkAsset(filepath.Join(r.opts.AssetDir, l.Asset), l); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkAsset(path string, l Layout) error {
	f, err := os.Open(path)
	if err != nil {
		return NewRenderError(ErrCodeAssetNotFound, fmt.Sprintf("base image not found at %s", path), err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return NewRenderError(ErrCodeRenderFailed, fmt.Sprintf("invalid image format at %s", path), err)
	}

	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	if area := l.Rect(1); !area.In(bounds) {
		return NewRenderError(ErrCodeInvalidInput,
			fmt.Sprintf("%s is %dx%d, text area %v does not fit", path, cfg.Width, cfg.Height, area), nil)
	}
	return nil
}
