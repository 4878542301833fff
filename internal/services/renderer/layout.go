package renderer

import (
	"image"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/albertogalvisvml/labelpdfapp/pkg/utils"
)

// Layout is the fixed geometry of one label variant. Corners are in the
// base asset's own pixel space.
type Layout struct {
	Variant models.Variant
	Asset   string
	Corners [4]image.Point
}

var layouts = map[models.Variant]Layout{
	models.Variant400: {
		Variant: models.Variant400,
		Asset:   "400.png",
		Corners: [4]image.Point{image.Pt(233, 119), image.Pt(832, 119), image.Pt(233, 218), image.Pt(832, 218)},
	},
	models.Variant500: {
		Variant: models.Variant500,
		Asset:   "500.png",
		Corners: [4]image.Point{image.Pt(235, 150), image.Pt(623, 150), image.Pt(235, 297), image.Pt(623, 297)},
	},
}

// LayoutFor returns the layout for v. An unknown variant keeps its own asset
// and name but borrows the 500 text area; ok reports whether v was known.
func LayoutFor(v models.Variant) (Layout, bool) {
	if l, ok := layouts[v]; ok {
		return l, true
	}
	name := models.Variant(utils.SanitizeName(string(v)))
	return Layout{
		Variant: name,
		Asset:   string(name) + ".png",
		Corners: layouts[models.Variant500].Corners,
	}, false
}

// Layouts returns every layout in response order.
func Layouts() []Layout {
	out := make([]Layout, 0, len(models.Variants))
	for _, v := range models.Variants {
		out = append(out, layouts[v])
	}
	return out
}

// Rect is the bounding rectangle of the corners multiplied by scale.
func (l Layout) Rect(scale int) image.Rectangle {
	minX, minY := l.Corners[0].X, l.Corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range l.Corners[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX*scale, minY*scale, maxX*scale, maxY*scale)
}

func (l Layout) Info() models.LayoutInfo {
	info := models.LayoutInfo{
		Variant: l.Variant,
		Type:    l.Variant.Type(),
		Asset:   l.Asset,
	}
	for i, p := range l.Corners {
		info.Corners[i] = [2]int{p.X, p.Y}
	}
	r := l.Rect(1)
	info.Width = r.Dx()
	info.Height = r.Dy()
	return info
}
