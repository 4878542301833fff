package renderer

import (
	"image"
	"testing"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLayoutFor(t *testing.T) {
	l, ok := LayoutFor(models.Variant400)
	assert.True(t, ok)
	assert.Equal(t, "400.png", l.Asset)
	assert.Equal(t, image.Rect(233, 119, 832, 218), l.Rect(1))

	l, ok = LayoutFor(models.Variant500)
	assert.True(t, ok)
	assert.Equal(t, image.Rect(235, 150, 623, 297), l.Rect(1))
}

func TestLayoutFor_UnknownBorrows500Area(t *testing.T) {
	l, ok := LayoutFor("750")
	assert.False(t, ok)
	assert.Equal(t, models.Variant("750"), l.Variant)
	assert.Equal(t, "750.png", l.Asset)
	assert.Equal(t, image.Rect(235, 150, 623, 297), l.Rect(1))
}

func TestLayoutFor_UnknownNameIsSanitised(t *testing.T) {
	l, ok := LayoutFor("../../etc/passwd")
	assert.False(t, ok)
	assert.Equal(t, models.Variant("etc_passwd"), l.Variant)
	assert.Equal(t, "etc_passwd.png", l.Asset)
	assert.NotContains(t, l.Asset, "/")
}

func TestLayout_RectScaled(t *testing.T) {
	l, _ := LayoutFor(models.Variant500)
	r := l.Rect(2)

	assert.Equal(t, image.Rect(470, 300, 1246, 594), r)
	assert.Equal(t, 776, r.Dx())
	assert.Equal(t, 294, r.Dy())
}

func TestLayout_CornerOrderDoesNotMatter(t *testing.T) {
	l := Layout{Corners: [4]image.Point{image.Pt(10, 40), image.Pt(5, 20), image.Pt(30, 20), image.Pt(30, 40)}}
	assert.Equal(t, image.Rect(5, 20, 30, 40), l.Rect(1))
}

func TestLayouts(t *testing.T) {
	all := Layouts()
	assert.Len(t, all, 2)
	assert.Equal(t, models.Variant400, all[0].Variant)
	assert.Equal(t, models.Variant500, all[1].Variant)

	info := all[0].Info()
	assert.Equal(t, "400ml", info.Type)
	assert.Equal(t, 599, info.Width)
	assert.Equal(t, 99, info.Height)
	assert.Equal(t, [2]int{832, 218}, info.Corners[3])
}
