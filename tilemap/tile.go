package tilemap

import (
	"fmt"
	"sort"
	"sync"
)

// Tile is a fixed-size cell referencing one tile of a sheet. Its pixel
// position is owned by the map and set when the tile is placed.
type Tile struct {
	Sheet  int
	Number int
	X, Y   int
	Width  int
	Height int
	Group  string
	Kind   string
}

func NewTile(width, height int) *Tile {
	return &Tile{Width: width, Height: height}
}

func (t *Tile) SetSheet(sheet int) { t.Sheet = sheet }

func (t *Tile) SetNumber(number int) { t.Number = number }

func (t *Tile) SetGroup(group string) { t.Group = group }

func (t *Tile) String() string {
	return fmt.Sprintf("tile(sheet=%d number=%d at %d,%d)", t.Sheet, t.Number, t.X, t.Y)
}

// TileFactory creates an empty tile of the given pixel size.
type TileFactory func(width, height int) *Tile

var (
	kindsMu sync.RWMutex
	kinds   = map[string]TileFactory{
		"": NewTile,
	}
)

// RegisterTileKind makes a tile factory available under a kind tag. Sheets
// configs select a kind with their kind attribute.
func RegisterTileKind(kind string, f TileFactory) {
	if f == nil {
		panic("tilemap: nil tile factory for kind " + kind)
	}
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds[kind] = func(width, height int) *Tile {
		t := f(width, height)
		t.Kind = kind
		return t
	}
}

// TileKind returns the factory registered for kind.
func TileKind(kind string) (TileFactory, error) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	f, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("tile kind %q: %w", kind, ErrUnknownKind)
	}
	return f, nil
}

// TileKinds lists registered kind tags.
func TileKinds() []string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
