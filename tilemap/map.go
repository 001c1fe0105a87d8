// Package tilemap stores a grid of tiles referencing sprite sheets, answers
// point and ray tile lookups, renders the visible part of the grid and
// persists it in a chunked binary format.
package tilemap

import (
	"fmt"
	"io/fs"
	"math"
)

// Map is a grid of optional tiles indexed [row][col]. It is not safe for
// concurrent use; one update/render loop owns it.
type Map struct {
	fsys fs.FS

	sheets     map[int]*Sheet
	groups     map[string]*Group
	groupOrder []*Group

	sheetsConfig string
	groupsConfig string

	tileWidth    int
	tileHeight   int
	widthInTile  int
	heightInTile int
	radius       int
	tiles        [][]*Tile

	factory  TileFactory
	renderer Renderer
	features []taggedFeature
}

// Option configures a Map at construction.
type Option func(*Map)

// WithTileSize sets the tile size used before any sheets config is loaded.
func WithTileSize(width, height int) Option {
	return func(m *Map) {
		m.tileWidth = width
		m.tileHeight = height
	}
}

// WithRenderer replaces the default sheet renderer.
func WithRenderer(r Renderer) Option {
	return func(m *Map) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithTileFactory sets the factory used by CreateTile.
func WithTileFactory(f TileFactory) Option {
	return func(m *Map) {
		if f != nil {
			m.factory = f
		}
	}
}

// New creates an empty map. Sheets and groups configs are resolved against
// fsys. Call Create (or Load) before placing tiles.
func New(fsys fs.FS, opts ...Option) *Map {
	m := &Map{
		fsys:    fsys,
		sheets:  make(map[int]*Sheet),
		groups:  make(map[string]*Group),
		factory: NewTile,
	}
	m.renderer = &SheetRenderer{Sheets: m}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create allocates an empty grid of width x height tiles. Existing tiles
// are dropped. The map is left untouched when a dimension is not positive.
func (m *Map) Create(widthInTile, heightInTile int) error {
	if widthInTile <= 0 || heightInTile <= 0 {
		return fmt.Errorf("create %dx%d: %w", widthInTile, heightInTile, ErrInvalidArgument)
	}

	m.widthInTile = widthInTile
	m.heightInTile = heightInTile
	m.radius = radius(widthInTile, heightInTile)
	m.tiles = make([][]*Tile, heightInTile)
	for v := range m.tiles {
		m.tiles[v] = make([]*Tile, widthInTile)
	}
	return nil
}

func radius(w, h int) int {
	return int(math.Ceil(math.Sqrt(float64(w*w + h*h))))
}

// CreateTile returns a new tile sized for this map.
func (m *Map) CreateTile() *Tile {
	return m.factory(m.tileWidth, m.tileHeight)
}

// SetTile places tile at (tx, ty) and sets its pixel position and size. An
// unlabelled tile gets the first declared group containing it.
func (m *Map) SetTile(tx, ty int, tile *Tile) error {
	if tile == nil {
		return fmt.Errorf("set tile %d,%d: nil tile: %w", tx, ty, ErrInvalidArgument)
	}
	if tx < 0 || ty < 0 || tx >= m.widthInTile || ty >= m.heightInTile {
		return fmt.Errorf("set tile %d,%d in %dx%d: %w", tx, ty, m.widthInTile, m.heightInTile, ErrOutOfBounds)
	}

	tile.X = tx * m.tileWidth
	tile.Y = ty * m.tileHeight
	tile.Width = m.tileWidth
	tile.Height = m.tileHeight
	if tile.Group == "" {
		tile.Group = m.groupOf(tile)
	}
	m.tiles[ty][tx] = tile
	return nil
}

// RemoveTile empties the cell at (tx, ty). Out of range cells are ignored.
func (m *Map) RemoveTile(tx, ty int) {
	if m.Tile(tx, ty) != nil {
		m.tiles[ty][tx] = nil
	}
}

// Tile returns the tile at (tx, ty), or nil when the cell is empty or out
// of range.
func (m *Map) Tile(tx, ty int) *Tile {
	if ty < 0 || ty >= len(m.tiles) {
		return nil
	}
	row := m.tiles[ty]
	if tx < 0 || tx >= len(row) {
		return nil
	}
	return row[tx]
}

// TileAt returns the tile covering the pixel (x, y).
func (m *Map) TileAt(x, y float64) *Tile {
	if m.tileWidth <= 0 || m.tileHeight <= 0 {
		return nil
	}
	return m.Tile(m.InTileX(x), m.InTileY(y))
}

// Localizable is anything with a pixel position.
type Localizable interface {
	X() float64
	Y() float64
}

// TileNear returns the tile under loc shifted by (offsetX, offsetY) pixels.
func (m *Map) TileNear(loc Localizable, offsetX, offsetY float64) *Tile {
	return m.TileAt(loc.X()+offsetX, loc.Y()+offsetY)
}

// InTileX converts a pixel abscissa to a column index.
func (m *Map) InTileX(x float64) int {
	return int(math.Floor(x / float64(m.tileWidth)))
}

// InTileY converts a pixel ordinate to a row index.
func (m *Map) InTileY(y float64) int {
	return int(math.Floor(y / float64(m.tileHeight)))
}

// TilesHit marches from (fromX, fromY) to (toX, toY) in unit steps along the
// normalized direction and returns the distinct tiles met, in order. Each
// step samples after the vertical half-step and again after the horizontal
// one. The march is approximate: a shallow diagonal may skip a tile corner.
func (m *Map) TilesHit(fromX, fromY, toX, toY float64) []*Tile {
	dh := toX - fromX
	dv := toY - fromY
	norm := math.Sqrt(dh*dh + dv*dv)

	var found []*Tile
	seen := make(map[*Tile]struct{})
	add := func(tile *Tile) {
		if tile == nil {
			return
		}
		if _, ok := seen[tile]; ok {
			return
		}
		seen[tile] = struct{}{}
		found = append(found, tile)
	}

	if norm == 0 {
		add(m.TileAt(fromX, fromY))
		return found
	}

	sx := dh / norm
	sy := dv / norm
	h := fromX
	v := fromY
	for count := 0; float64(count) < norm; count++ {
		v += sy
		add(m.TileAt(roundToward(sx, h), roundToward(sy, v)))

		h += sx
		add(m.TileAt(roundToward(sx, h), roundToward(sy, v)))
	}
	return found
}

// roundToward rounds value in the direction of travel.
func roundToward(speed, value float64) float64 {
	if speed < 0 {
		return math.Floor(value)
	}
	return math.Ceil(value)
}

// Append copies the tiles of other into this map with their top-left at
// (offsetX, offsetY), growing the grid when needed. Cells of this map not
// covered by a tile of other keep their tile. Tiles are copied, other is
// not modified.
func (m *Map) Append(other *Map, offsetX, offsetY int) error {
	if other == nil {
		return fmt.Errorf("append: nil map: %w", ErrInvalidArgument)
	}
	if offsetX < 0 || offsetY < 0 {
		return fmt.Errorf("append at %d,%d: %w", offsetX, offsetY, ErrInvalidArgument)
	}
	if m.tileWidth != 0 && other.tileWidth != 0 &&
		(m.tileWidth != other.tileWidth || m.tileHeight != other.tileHeight) {
		return fmt.Errorf("append %dx%d tiles into %dx%d tiles: %w",
			other.tileWidth, other.tileHeight, m.tileWidth, m.tileHeight, ErrInvalidArgument)
	}
	if m.tileWidth == 0 {
		m.tileWidth = other.tileWidth
		m.tileHeight = other.tileHeight
	}

	newWidth := max(m.widthInTile, offsetX+other.widthInTile)
	newHeight := max(m.heightInTile, offsetY+other.heightInTile)

	for len(m.tiles) < newHeight {
		m.tiles = append(m.tiles, nil)
	}
	for v, row := range m.tiles {
		if len(row) < newWidth {
			grown := make([]*Tile, newWidth)
			copy(grown, row)
			m.tiles[v] = grown
		}
	}
	m.widthInTile = newWidth
	m.heightInTile = newHeight
	m.radius = radius(newWidth, newHeight)

	for cty := 0; cty < other.heightInTile; cty++ {
		for ctx := 0; ctx < other.widthInTile; ctx++ {
			src := other.Tile(ctx, cty)
			if src == nil {
				continue
			}
			tile := *src
			if err := m.SetTile(offsetX+ctx, offsetY+cty, &tile); err != nil {
				return fmt.Errorf("append: %w", err)
			}
		}
	}
	return nil
}

// Clear drops every tile and the grid itself.
func (m *Map) Clear() {
	m.tiles = nil
	m.widthInTile = 0
	m.heightInTile = 0
	m.radius = 0
}

// IsCreated reports whether a grid has been allocated.
func (m *Map) IsCreated() bool {
	return m.tiles != nil
}

// Each calls fn for every non-empty cell, row by row.
func (m *Map) Each(fn func(tx, ty int, tile *Tile)) {
	for ty, row := range m.tiles {
		for tx, tile := range row {
			if tile != nil {
				fn(tx, ty, tile)
			}
		}
	}
}

// TilesCount returns the number of non-empty cells.
func (m *Map) TilesCount() int {
	n := 0
	m.Each(func(int, int, *Tile) { n++ })
	return n
}

func (m *Map) TileWidth() int { return m.tileWidth }
func (m *Map) TileHeight() int { return m.tileHeight }
func (m *Map) InTileWidth() int { return m.widthInTile }
func (m *Map) InTileHeight() int { return m.heightInTile }

// InTileRadius is the grid diagonal in tiles, rounded up.
func (m *Map) InTileRadius() int { return m.radius }

// Width returns the map width in pixels.
func (m *Map) Width() int { return m.widthInTile * m.tileWidth }

// Height returns the map height in pixels.
func (m *Map) Height() int { return m.heightInTile * m.tileHeight }

// SheetsConfig returns the path of the last loaded sheets config.
func (m *Map) SheetsConfig() string { return m.sheetsConfig }

// GroupsConfig returns the path of the last loaded groups config.
func (m *Map) GroupsConfig() string { return m.groupsConfig }
