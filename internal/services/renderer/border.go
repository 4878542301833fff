package renderer

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// strokePass is one ring of offset copies used to fake a text outline.
type strokePass struct {
	angleStep int
	radius    float64
}

// Rings from outermost to innermost, radius as a fraction of the border
// thickness.
var strokePasses = []strokePass{
	{angleStep: 10, radius: 1.0},
	{angleStep: 15, radius: 0.7},
	{angleStep: 20, radius: 0.4},
}

var (
	borderColor = color.NRGBA{R: 231, G: 235, B: 236, A: 255}
	textColor   = color.NRGBA{R: 10, G: 10, B: 10, A: 255}
)

// strokeOffsets returns the integer offsets of every copy drawn by the
// outline passes, in drawing order.
func strokeOffsets(thickness float64) [][2]float64 {
	var offsets [][2]float64
	for _, pass := range strokePasses {
		r := thickness * pass.radius
		for angle := 0; angle < 360; angle += pass.angleStep {
			rad := float64(angle) * math.Pi / 180
			dx := math.Trunc(math.Cos(rad) * r)
			dy := math.Trunc(math.Sin(rad) * r)
			offsets = append(offsets, [2]float64{dx, dy})
		}
	}
	return offsets
}

// drawBorderedText draws text with its baseline origin at (x, y): the
// outline rings first, then the foreground text on top.
func drawBorderedText(dc *gg.Context, text string, x, y, thickness float64) {
	dc.SetColor(borderColor)
	for _, off := range strokeOffsets(thickness) {
		dc.DrawString(text, x+off[0], y+off[1])
	}

	dc.SetColor(textColor)
	dc.DrawString(text, x, y)
}
