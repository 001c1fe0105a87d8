package tilemap

import (
	"image"
	"math"
)

// Graphic blits a rectangle of a source image at a screen position.
type Graphic interface {
	DrawImage(src image.Image, sr image.Rectangle, x, y int)
}

// Renderer draws one tile at a screen position.
type Renderer interface {
	RenderTile(g Graphic, tile *Tile, x, y int)
}

// SheetRenderer draws tiles by copying them out of their sheet image.
type SheetRenderer struct {
	Sheets SheetSource
}

// RenderTile draws nothing for a tile whose sheet is not registered.
func (r *SheetRenderer) RenderTile(g Graphic, tile *Tile, x, y int) {
	sheet, err := r.Sheets.Sheet(tile.Sheet)
	if err != nil || tile.Number < 0 || tile.Number >= sheet.Count() {
		return
	}
	g.DrawImage(sheet.Image, sheet.TileBounds(tile.Number), x, y)
}

// Viewport is the part of the world shown on screen. X and Y are the world
// position of the view's bottom-left corner, world Y growing upwards.
// ViewX and ViewY offset the result on screen.
type Viewport struct {
	X, Y          float64
	Width, Height int
	ViewX, ViewY  int
}

// ToScreen returns the screen position of the top-left corner of the world
// rectangle whose bottom-left corner is (x, y) and whose height is h.
func (v Viewport) ToScreen(x, y, h float64) (float64, float64) {
	sx := x - math.Floor(v.X) + float64(v.ViewX)
	sy := -y - h + math.Floor(v.Y) + float64(v.Height) + float64(v.ViewY)
	return sx, sy
}

// ToWorld returns the world position of the screen pixel (sx, sy), that is
// the bottom-left corner of the world pixel it shows.
func (v Viewport) ToWorld(sx, sy int) (float64, float64) {
	x := float64(sx-v.ViewX) + math.Floor(v.X)
	y := float64(v.Height-(sy-v.ViewY)-1) + math.Floor(v.Y)
	return x, y
}

// VisibleRange returns the first and last tile columns and rows intersecting
// the viewport, clamped to the grid. Empty when last < first.
func (m *Map) VisibleRange(view Viewport) (fromTX, fromTY, toTX, toTY int) {
	if m.tileWidth <= 0 || m.tileHeight <= 0 {
		return 0, 0, -1, -1
	}
	fromTX = max(0, m.InTileX(view.X))
	fromTY = max(0, m.InTileY(view.Y))
	toTX = min(m.widthInTile-1, m.InTileX(view.X+float64(view.Width)))
	toTY = min(m.heightInTile-1, m.InTileY(view.Y+float64(view.Height)))
	return fromTX, fromTY, toTX, toTY
}

// Render draws the tiles intersecting view with the map renderer. World
// ordinates grow upwards, screen ordinates downwards.
func (m *Map) Render(g Graphic, view Viewport) {
	fromTX, fromTY, toTX, toTY := m.VisibleRange(view)
	sx := int(math.Floor(view.X))
	sy := int(math.Floor(view.Y))
	for ty := fromTY; ty <= toTY; ty++ {
		for tx := fromTX; tx <= toTX; tx++ {
			tile := m.tiles[ty][tx]
			if tile == nil {
				continue
			}
			x := tile.X - sx + view.ViewX
			y := -tile.Y - tile.Height + sy + view.Height + view.ViewY
			m.renderer.RenderTile(g, tile, x, y)
		}
	}
}

// RenderTile draws a single tile at a screen position with the map renderer.
func (m *Map) RenderTile(g Graphic, tile *Tile, x, y int) {
	m.renderer.RenderTile(g, tile, x, y)
}
