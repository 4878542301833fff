package renderer

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

const pointsPerInch = 72.0

// PageSize converts pixel dimensions into PDF points at dpi.
func PageSize(widthPx, heightPx int, dpi float64) (float64, float64) {
	pixelsPerPoint := dpi / pointsPerInch
	return float64(widthPx) / pixelsPerPoint, float64(heightPx) / pixelsPerPoint
}

type pdfMeta struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// writePDF embeds the PNG at pngPath on a single page of exactly
// pageW x pageH points and writes it uncompressed to pdfPath.
func writePDF(pngPath, pdfPath string, pageW, pageH float64, meta pdfMeta) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetCompression(false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)

	pdf.AddPage()
	pdf.ImageOptions(pngPath, 0, 0, pageW, pageH, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
