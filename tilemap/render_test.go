package tilemap

import (
	"image"
	"testing"
)

type blit struct {
	sr   image.Rectangle
	x, y int
}

type recordingGraphic struct {
	blits []blit
}

func (g *recordingGraphic) DrawImage(_ image.Image, sr image.Rectangle, x, y int) {
	g.blits = append(g.blits, blit{sr: sr, x: x, y: y})
}

type countingRenderer struct {
	tiles []*Tile
	at    [][2]int
}

func (r *countingRenderer) RenderTile(_ Graphic, tile *Tile, x, y int) {
	r.tiles = append(r.tiles, tile)
	r.at = append(r.at, [2]int{x, y})
}

func TestRenderFlipsAndCullsTiles(t *testing.T) {
	r := &countingRenderer{}
	m := New(nil, WithTileSize(16, 16), WithRenderer(r))
	if err := m.Create(10, 10); err != nil {
		t.Fatal(err)
	}
	bottomLeft := place(t, m, 0, 0, 0, 0)
	inside := place(t, m, 2, 1, 0, 0)
	place(t, m, 9, 9, 0, 0)

	m.Render(nil, Viewport{X: 0, Y: 0, Width: 48, Height: 32})

	if len(r.tiles) != 2 {
		t.Fatalf("rendered %d tiles, want 2", len(r.tiles))
	}
	want := map[*Tile][2]int{
		bottomLeft: {0, 16},
		inside:     {32, 0},
	}
	for i, tile := range r.tiles {
		if r.at[i] != want[tile] {
			t.Errorf("%v drawn at %v, want %v", tile, r.at[i], want[tile])
		}
	}
}

func TestRenderScrollsAndOffsets(t *testing.T) {
	r := &countingRenderer{}
	m := New(nil, WithTileSize(16, 16), WithRenderer(r))
	if err := m.Create(4, 4); err != nil {
		t.Fatal(err)
	}
	tile := place(t, m, 3, 3, 0, 0)

	m.Render(nil, Viewport{X: 40, Y: 30, Width: 20, Height: 20, ViewX: 5, ViewY: 7})

	if len(r.tiles) != 1 || r.tiles[0] != tile {
		t.Fatalf("rendered %v", r.tiles)
	}
	// x: 48-40+5, y: -48-16+30+20+7
	if r.at[0] != [2]int{13, -7} {
		t.Errorf("drawn at %v", r.at[0])
	}
}

func TestSheetRendererBlitsTileBounds(t *testing.T) {
	m := newLoadedMap(t, 1, 1)
	tile := place(t, m, 0, 0, 1, 6)
	g := &recordingGraphic{}

	m.RenderTile(g, tile, 3, 4)
	missing := &Tile{Sheet: 5}
	m.RenderTile(g, missing, 0, 0)

	if len(g.blits) != 1 {
		t.Fatalf("blits = %v", g.blits)
	}
	if g.blits[0].sr != image.Rect(32, 16, 48, 32) || g.blits[0].x != 3 || g.blits[0].y != 4 {
		t.Errorf("blit = %+v", g.blits[0])
	}
}

func TestVisibleRangeClamps(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(5, 5); err != nil {
		t.Fatal(err)
	}
	fx, fy, tx, ty := m.VisibleRange(Viewport{X: -20, Y: 40, Width: 1000, Height: 10})
	if fx != 0 || fy != 2 || tx != 4 || ty != 3 {
		t.Errorf("VisibleRange = %d,%d..%d,%d", fx, fy, tx, ty)
	}
}

func TestViewportPointsResolveToTheDrawnTile(t *testing.T) {
	m := newLoadedMap(t, 2, 2)
	lower := place(t, m, 0, 0, 0, 0)
	upper := place(t, m, 0, 1, 0, 1)
	view := Viewport{Width: 32, Height: 32}

	// Row 1 is drawn on screen rows 0-15, row 0 on 16-31.
	if _, y := view.ToScreen(float64(upper.X), float64(upper.Y), float64(upper.Height)); y != 0 {
		t.Fatalf("upper tile drawn at y=%v", y)
	}
	tests := []struct {
		sy   int
		want *Tile
	}{
		{0, upper},
		{15, upper},
		{16, lower},
		{31, lower},
	}
	for _, tt := range tests {
		x, y := view.ToWorld(3, tt.sy)
		if got := m.TileAt(x, y); got != tt.want {
			t.Errorf("screen row %d -> world %v,%v -> %v, want %v", tt.sy, x, y, got, tt.want)
		}
	}
}
