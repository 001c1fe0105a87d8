package tilemap

import (
	"errors"
	"testing"
)

func TestCreateRejectsNonPositiveSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil, WithTileSize(16, 16))
			if err := m.Create(3, 2); err != nil {
				t.Fatal(err)
			}
			place(t, m, 1, 1, 0, 0)

			err := m.Create(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Create(%d, %d) = %v, want ErrInvalidArgument", tt.w, tt.h, err)
			}
			if m.InTileWidth() != 3 || m.InTileHeight() != 2 || m.Tile(1, 1) == nil {
				t.Error("failed Create changed the map")
			}
		})
	}
}

func TestCreatedGridIsEmpty(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 7}, {300, 2}} {
		m := New(nil, WithTileSize(8, 8))
		if err := m.Create(size[0], size[1]); err != nil {
			t.Fatal(err)
		}
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				if m.Tile(x, y) != nil {
					t.Fatalf("%dx%d: Tile(%d, %d) not empty", size[0], size[1], x, y)
				}
			}
		}
		if m.TilesCount() != 0 {
			t.Errorf("TilesCount = %d", m.TilesCount())
		}
	}
}

func TestOutOfRangeLookupsReturnNil(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(2, 2); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			place(t, m, x, y, 0, 0)
		}
	}

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {100, 100}, {-5, 9}} {
		if tile := m.Tile(c[0], c[1]); tile != nil {
			t.Errorf("Tile(%d, %d) = %v, want nil", c[0], c[1], tile)
		}
	}
	if tile := m.TileAt(-0.5, 3); tile != nil {
		t.Errorf("TileAt(-0.5, 3) = %v, want nil", tile)
	}
}

func TestTileAtScenario(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(2, 2); err != nil {
		t.Fatal(err)
	}
	first := place(t, m, 0, 0, 0, 3)
	second := place(t, m, 1, 1, 0, 5)

	tests := []struct {
		x, y float64
		want *Tile
	}{
		{20, 20, second},
		{0, 0, first},
		{31, 31, second},
		{32, 32, nil},
		{20, 5, nil},
	}
	for _, tt := range tests {
		if got := m.TileAt(tt.x, tt.y); got != tt.want {
			t.Errorf("TileAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if second.X != 16 || second.Y != 16 || second.Width != 16 || second.Height != 16 {
		t.Errorf("placed tile geometry = %d,%d %dx%d", second.X, second.Y, second.Width, second.Height)
	}
}

func TestSetTileOutOfBounds(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(2, 3); err != nil {
		t.Fatal(err)
	}
	for _, c := range [][2]int{{2, 0}, {0, 3}, {-1, 0}} {
		if err := m.SetTile(c[0], c[1], NewTile(16, 16)); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetTile(%d, %d) = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
	if err := m.SetTile(0, 0, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetTile(nil) = %v, want ErrInvalidArgument", err)
	}
}

func TestRadius(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(3, 4); err != nil {
		t.Fatal(err)
	}
	if m.InTileRadius() != 5 {
		t.Errorf("radius of 3x4 = %d, want 5", m.InTileRadius())
	}
	if err := m.Create(1, 1); err != nil {
		t.Fatal(err)
	}
	if m.InTileRadius() != 2 {
		t.Errorf("radius of 1x1 = %d, want 2", m.InTileRadius())
	}
	if m.Width() != 16 || m.Height() != 16 {
		t.Errorf("pixel size = %dx%d", m.Width(), m.Height())
	}
}

func TestTilesHit(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(4, 2); err != nil {
		t.Fatal(err)
	}
	row := make([]*Tile, 4)
	for x := range row {
		row[x] = place(t, m, x, 0, 0, x)
	}
	below := place(t, m, 2, 1, 0, 9)

	tests := []struct {
		name                   string
		fromX, fromY, toX, toY float64
		want                   []*Tile
	}{
		{"left to right", 0, 8, 63, 8, row},
		{"right to left", 63, 8, 0, 8, []*Tile{row[3], row[2], row[1], row[0]}},
		{"standing still", 40, 20, 40, 20, []*Tile{below}},
		{"down through column", 40, 1, 40, 30, []*Tile{row[2], below}},
		{"empty cells skipped", 0, 20, 60, 20, []*Tile{below}},
		{"outside the map", -100, -100, -50, -50, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.TilesHit(tt.fromX, tt.fromY, tt.toX, tt.toY)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tiles %v, want %v", len(got), got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tile %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAppend(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(3, 2); err != nil {
		t.Fatal(err)
	}
	keptA := place(t, m, 0, 0, 0, 1)
	keptB := place(t, m, 2, 1, 0, 2)
	place(t, m, 1, 1, 0, 3)

	other := New(nil, WithTileSize(16, 16))
	if err := other.Create(2, 3); err != nil {
		t.Fatal(err)
	}
	place(t, other, 0, 0, 1, 10)
	place(t, other, 1, 2, 1, 11)

	if err := m.Append(other, 1, 1); err != nil {
		t.Fatal(err)
	}

	if m.InTileWidth() != 3 || m.InTileHeight() != 4 {
		t.Fatalf("size = %dx%d, want 3x4", m.InTileWidth(), m.InTileHeight())
	}
	if m.Tile(0, 0) != keptA {
		t.Error("tile at 0,0 lost")
	}
	if m.Tile(2, 1) != keptB {
		t.Error("tile at 2,1 not covered by the appended map was lost")
	}

	got := m.Tile(1, 1)
	if got == nil || got.Sheet != 1 || got.Number != 10 || got.X != 16 || got.Y != 16 {
		t.Errorf("tile at 1,1 = %v, want sheet 1 number 10 at 16,16", got)
	}
	got = m.Tile(2, 3)
	if got == nil || got.Number != 11 || got.X != 32 || got.Y != 48 {
		t.Errorf("tile at 2,3 = %v, want number 11 at 32,48", got)
	}
	if got == other.Tile(1, 2) {
		t.Error("appended tile shared with the source map")
	}
	if other.Tile(1, 2).X != 16 {
		t.Error("source map tile was modified")
	}
	for _, c := range [][2]int{{0, 2}, {0, 3}, {1, 3}} {
		if m.Tile(c[0], c[1]) != nil {
			t.Errorf("grown cell %d,%d not empty", c[0], c[1])
		}
	}
}

func TestAppendRejectsBadArguments(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(2, 2); err != nil {
		t.Fatal(err)
	}
	other := New(nil, WithTileSize(8, 8))
	if err := other.Create(1, 1); err != nil {
		t.Fatal(err)
	}

	if err := m.Append(nil, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Append(nil) = %v", err)
	}
	if err := m.Append(other, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Append with other tile size = %v", err)
	}
	if err := m.Append(New(nil, WithTileSize(16, 16)), -1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Append at negative offset = %v", err)
	}
}

func TestRemoveTileAndClear(t *testing.T) {
	m := New(nil, WithTileSize(16, 16))
	if err := m.Create(2, 2); err != nil {
		t.Fatal(err)
	}
	place(t, m, 0, 0, 0, 0)
	place(t, m, 1, 0, 0, 0)

	m.RemoveTile(0, 0)
	m.RemoveTile(9, 9)
	if m.Tile(0, 0) != nil || m.TilesCount() != 1 {
		t.Errorf("after RemoveTile: count %d", m.TilesCount())
	}

	m.Clear()
	if m.IsCreated() || m.InTileWidth() != 0 || m.Tile(1, 0) != nil {
		t.Error("Clear left tiles behind")
	}
}

func TestRegisteredTileKind(t *testing.T) {
	RegisterTileKind("test-solid", func(w, h int) *Tile {
		return &Tile{Width: w, Height: h, Group: "solid"}
	})
	f, err := TileKind("test-solid")
	if err != nil {
		t.Fatal(err)
	}
	m := New(nil, WithTileSize(16, 16), WithTileFactory(f))
	tile := m.CreateTile()
	if tile.Kind != "test-solid" || tile.Group != "solid" || tile.Width != 16 {
		t.Errorf("CreateTile = %+v", tile)
	}

	if _, err := TileKind("missing"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("TileKind(missing) = %v", err)
	}
}
