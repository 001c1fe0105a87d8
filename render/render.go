// Package render draws tile maps and debug shapes on ebiten images.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Cache keeps one GPU image per sheet image. Sheets are uploaded on first
// use and live as long as the cache.
type Cache struct {
	images map[image.Image]*ebiten.Image
}

func NewCache() *Cache {
	return &Cache{images: make(map[image.Image]*ebiten.Image)}
}

func (c *Cache) get(src image.Image) *ebiten.Image {
	if img, ok := src.(*ebiten.Image); ok {
		return img
	}
	img, ok := c.images[src]
	if !ok {
		img = ebiten.NewImageFromImage(src)
		c.images[src] = img
	}
	return img
}

// Screen is a tilemap.Graphic drawing on an ebiten image.
type Screen struct {
	Target *ebiten.Image
	cache  *Cache
	op     ebiten.DrawImageOptions
}

// NewScreen returns a Screen drawing on target with sheets from cache.
func NewScreen(target *ebiten.Image, cache *Cache) *Screen {
	return &Screen{Target: target, cache: cache}
}

func (s *Screen) DrawImage(src image.Image, sr image.Rectangle, x, y int) {
	img := s.cache.get(src)
	s.op.GeoM.Reset()
	s.op.GeoM.Translate(float64(x), float64(y))
	s.Target.DrawImage(img.SubImage(sr).(*ebiten.Image), &s.op)
}

// StrokeRect outlines a rectangle with one pixel lines.
func StrokeRect(dst *ebiten.Image, x, y, w, h float32, c color.Color) {
	vector.FillRect(dst, x, y, w, 1, c, false)     // Top
	vector.FillRect(dst, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(dst, x, y, 1, h, c, false)     // Left
	vector.FillRect(dst, x+w-1, y, 1, h, c, false) // Right
}
