// Package graphic renders tile maps into plain images, without a window.
package graphic

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Image draws into a draw.Image. It implements tilemap.Graphic.
type Image struct {
	Dst draw.Image
	// Op is draw.Over unless set.
	Op draw.Op
}

// New returns an Image backed by a new RGBA image of the given size.
func New(width, height int) *Image {
	return &Image{Dst: image.NewRGBA(image.Rect(0, 0, width, height)), Op: draw.Over}
}

// DrawImage copies sr of src with its top-left corner at (x, y). Parts
// falling outside the destination are clipped.
func (g *Image) DrawImage(src image.Image, sr image.Rectangle, x, y int) {
	draw.Copy(g.Dst, image.Pt(x, y), src, sr, g.Op, nil)
}

// Fill paints the whole destination with c.
func (g *Image) Fill(c color.Color) {
	draw.Draw(g.Dst, g.Dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect outlines the w x h rectangle at (x, y) with a one pixel line.
func (g *Image) StrokeRect(x, y, w, h int, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	u := image.NewUniform(c)
	for _, r := range []image.Rectangle{
		image.Rect(x, y, x+w, y+1),
		image.Rect(x, y+h-1, x+w, y+h),
		image.Rect(x, y, x+1, y+h),
		image.Rect(x+w-1, y, x+w, y+h),
	} {
		draw.Draw(g.Dst, r, u, image.Point{}, g.Op)
	}
}

// Bounds returns the destination bounds.
func (g *Image) Bounds() image.Rectangle {
	return g.Dst.Bounds()
}
