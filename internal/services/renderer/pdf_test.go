package renderer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSize(t *testing.T) {
	w, h := PageSize(1200, 600, 300)
	assert.InDelta(t, 288.0, w, 1e-9)
	assert.InDelta(t, 144.0, h, 1e-9)

	w, h = PageSize(72, 144, 72)
	assert.InDelta(t, 72.0, w, 1e-9)
	assert.InDelta(t, 144.0, h, 1e-9)
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	png := writeAsset(t, dir, "label.png", 120, 60)
	out := filepath.Join(dir, "label.pdf")

	w, h := PageSize(120, 60, DefaultDPI)
	err := writePDF(png, out, w, h, pdfMeta{
		Title:   "Etiqueta JUAN",
		Author:  pdfAuthor,
		Subject: "Etiqueta personalizada 400",
		Creator: pdfCreator,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "/Title")
	assert.Contains(t, string(data), "/MediaBox")
}

func TestWritePDF_MissingImage(t *testing.T) {
	dir := t.TempDir()
	w, h := PageSize(120, 60, DefaultDPI)

	err := writePDF(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.pdf"), w, h, pdfMeta{})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "out.pdf"))
}
