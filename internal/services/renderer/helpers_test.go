package renderer

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var baseColor = color.NRGBA{R: 200, G: 20, B: 40, A: 255}

func zapNop() *zap.Logger { return zap.NewNop() }

// writeAsset writes a solid label image of w x h pixels into dir.
func writeAsset(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, baseColor)
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

// newTestRenderer sets up asset, image and public dirs under a temp root
// with both label assets present.
func newTestRenderer(t *testing.T) (*Renderer, Options) {
	t.Helper()
	root := t.TempDir()
	opts := Options{
		AssetDir:  filepath.Join(root, "asset"),
		ImageDir:  filepath.Join(root, "output_can"),
		PublicDir: filepath.Join(root, "public"),
		Logger:    zapNop(),
	}
	require.NoError(t, os.MkdirAll(opts.AssetDir, 0755))
	writeAsset(t, opts.AssetDir, "400.png", 1000, 320)
	writeAsset(t, opts.AssetDir, "500.png", 760, 420)

	r, err := New(opts)
	require.NoError(t, err)
	return r, opts
}

func openImage(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img
}
