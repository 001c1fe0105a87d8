package graphic

import (
	"image"
	"image/color"
	"testing"

	"github.com/automoto/tilecore/tilemap"
)

func sheetImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			c := color.NRGBA{R: 200, A: 255}
			if x >= 8 {
				c = color.NRGBA{B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderMapIntoImage(t *testing.T) {
	m := tilemap.New(nil, tilemap.WithTileSize(8, 8))
	sheet, err := tilemap.NewSheet("test", sheetImage(), 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	m.AddSheet(0, sheet)
	if err := m.Create(2, 2); err != nil {
		t.Fatal(err)
	}
	red := m.CreateTile()
	if err := m.SetTile(0, 0, red); err != nil {
		t.Fatal(err)
	}
	blue := m.CreateTile()
	blue.SetNumber(1)
	if err := m.SetTile(1, 1, blue); err != nil {
		t.Fatal(err)
	}

	g := New(16, 16)
	m.Render(g, tilemap.Viewport{Width: 16, Height: 16})

	// World row 0 is the bottom of the screen.
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 12, color.RGBA{R: 200, A: 255}},
		{12, 2, color.RGBA{B: 200, A: 255}},
		{12, 12, color.RGBA{}},
		{2, 2, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := g.Dst.At(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel %d,%d = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawImageClips(t *testing.T) {
	g := New(4, 4)
	g.DrawImage(sheetImage(), image.Rect(0, 0, 8, 8), -2, 1)
	if got := g.Dst.At(0, 1); got != (color.RGBA{R: 200, A: 255}) {
		t.Errorf("clipped blit pixel = %v", got)
	}
	if got := g.Dst.At(0, 0); got != (color.RGBA{}) {
		t.Errorf("pixel above blit = %v", got)
	}
}

func TestStrokeRect(t *testing.T) {
	g := New(6, 6)
	g.StrokeRect(1, 1, 4, 4, color.White)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, p := range []image.Point{{1, 1}, {4, 1}, {1, 4}, {4, 4}, {2, 1}} {
		if got := g.Dst.At(p.X, p.Y); got != white {
			t.Errorf("edge %v = %v", p, got)
		}
	}
	if got := g.Dst.At(2, 2); got != (color.RGBA{}) {
		t.Errorf("inside = %v", got)
	}
}
