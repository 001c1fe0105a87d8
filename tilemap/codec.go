package tilemap

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/automoto/tilecore/storage"
	"github.com/automoto/tilecore/stream"
)

// BlockSize is the width in tiles of one chunk of the binary map format.
const BlockSize = 256

// ErrTooLarge is returned by Save when a size or count does not fit the
// 16-bit fields of the binary format.
var ErrTooLarge = errors.New("too large for map format")

// Save writes the map: the sheets and groups config paths, the size in
// tiles, then the tiles in chunks of BlockSize columns. Every integer is
// big-endian.
func (m *Map) Save(w io.Writer) error {
	if !m.IsCreated() {
		return fmt.Errorf("save: map not created: %w", ErrInvalidArgument)
	}
	if m.widthInTile > math.MaxInt16 || m.heightInTile > math.MaxInt16 {
		return fmt.Errorf("save %dx%d map: %w", m.widthInTile, m.heightInTile, ErrTooLarge)
	}

	out := stream.NewWriter(w)
	if err := out.WriteString(m.sheetsConfig); err != nil {
		return fmt.Errorf("save sheets config: %w", err)
	}
	if err := out.WriteString(m.groupsConfig); err != nil {
		return fmt.Errorf("save groups config: %w", err)
	}
	if err := out.WriteInt16(int16(m.widthInTile)); err != nil {
		return fmt.Errorf("save width: %w", err)
	}
	if err := out.WriteInt16(int16(m.heightInTile)); err != nil {
		return fmt.Errorf("save height: %w", err)
	}

	chunks := chunkCount(m.widthInTile)
	if err := out.WriteInt16(int16(chunks)); err != nil {
		return fmt.Errorf("save chunk count: %w", err)
	}
	for s := 0; s < chunks; s++ {
		if err := m.saveChunk(out, s); err != nil {
			return fmt.Errorf("save chunk %d: %w", s, err)
		}
	}
	return out.Flush()
}

func chunkCount(widthInTile int) int {
	return (widthInTile + BlockSize - 1) / BlockSize
}

type placedTile struct {
	tile   *Tile
	tx, ty int
}

// chunkTiles lists the tiles of columns [s*BlockSize, (s+1)*BlockSize) row
// by row.
func (m *Map) chunkTiles(s int) []placedTile {
	start := s * BlockSize
	end := min(start+BlockSize, m.widthInTile)

	var tiles []placedTile
	for ty := 0; ty < m.heightInTile; ty++ {
		for tx := start; tx < end; tx++ {
			if tile := m.tiles[ty][tx]; tile != nil {
				tiles = append(tiles, placedTile{tile: tile, tx: tx, ty: ty})
			}
		}
	}
	return tiles
}

func (m *Map) saveChunk(out *stream.Writer, s int) error {
	tiles := m.chunkTiles(s)
	if len(tiles) > math.MaxInt16 {
		return fmt.Errorf("%d tiles: %w", len(tiles), ErrTooLarge)
	}
	if err := out.WriteInt16(int16(len(tiles))); err != nil {
		return err
	}
	start := s * BlockSize
	for _, p := range tiles {
		for _, v := range [...]int{p.tile.Sheet, p.tile.Number, p.tx - start, p.ty} {
			if err := out.WriteInt32(int32(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load replaces the map with one read from r. The sheets and groups configs
// named in the header are loaded from the map file system; an empty path
// keeps the current registry. The map is left untouched on failure.
func (m *Map) Load(r io.Reader) error {
	in := stream.NewReader(r)
	sheetsConfig, err := in.ReadString()
	if err != nil {
		return fmt.Errorf("load sheets config: %w", err)
	}
	groupsConfig, err := in.ReadString()
	if err != nil {
		return fmt.Errorf("load groups config: %w", err)
	}
	width, err := in.ReadInt16()
	if err != nil {
		return fmt.Errorf("load width: %w", err)
	}
	height, err := in.ReadInt16()
	if err != nil {
		return fmt.Errorf("load height: %w", err)
	}

	next := m.successor()
	if err := next.Create(int(width), int(height)); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if sheetsConfig != "" {
		if err := next.LoadSheets(sheetsConfig); err != nil {
			return fmt.Errorf("load: %w", err)
		}
	}
	if groupsConfig != "" {
		if err := next.LoadGroups(groupsConfig); err != nil {
			return fmt.Errorf("load: %w", err)
		}
	}

	chunks, err := in.ReadInt16()
	if err != nil {
		return fmt.Errorf("load chunk count: %w", err)
	}
	for s := 0; s < int(chunks); s++ {
		if err := next.loadChunk(in, s); err != nil {
			return fmt.Errorf("load chunk %d: %w", s, err)
		}
	}
	next.assignGroups()

	renderer := m.renderer
	*m = *next
	m.renderer = renderer
	return nil
}

// successor returns an empty map sharing this map's file system, registries
// and tile settings.
func (m *Map) successor() *Map {
	return &Map{
		fsys:         m.fsys,
		sheets:       m.sheets,
		groups:       m.groups,
		groupOrder:   m.groupOrder,
		sheetsConfig: m.sheetsConfig,
		groupsConfig: m.groupsConfig,
		tileWidth:    m.tileWidth,
		tileHeight:   m.tileHeight,
		factory:      m.factory,
		features:     append([]taggedFeature(nil), m.features...),
	}
}

func (m *Map) loadChunk(in *stream.Reader, s int) error {
	count, err := in.ReadInt16()
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("tile count %d: %w", count, ErrInvalidArgument)
	}

	var fields [4]int32
	for i := 0; i < int(count); i++ {
		for f := range fields {
			if fields[f], err = in.ReadInt32(); err != nil {
				return fmt.Errorf("tile %d: %w", i, err)
			}
		}
		sheet, number, x, y := int(fields[0]), int(fields[1]), int(fields[2]), int(fields[3])
		if sheet < 0 || sheet >= len(m.sheets) {
			return fmt.Errorf("tile %d: sheet %d of %d: %w", i, sheet, len(m.sheets), ErrSheetMissing)
		}
		if _, err := m.Sheet(sheet); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
		if x < 0 || x >= BlockSize {
			return fmt.Errorf("tile %d: x %d in chunk: %w", i, x, ErrOutOfBounds)
		}

		tile := m.CreateTile()
		tile.SetSheet(sheet)
		tile.SetNumber(number)
		if err := m.SetTile(s*BlockSize+x, y, tile); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
	}
	return nil
}

// SaveTo writes the map to the named stream of store.
func (m *Map) SaveTo(store storage.Storage, name string) (err error) {
	w, err := store.Create(name)
	if err != nil {
		return fmt.Errorf("save map %s: %w", name, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save map %s: %w", name, cerr)
		}
	}()
	if err := m.Save(w); err != nil {
		return fmt.Errorf("save map %s: %w", name, err)
	}
	return nil
}

// LoadFrom reads the map from the named stream of store.
func (m *Map) LoadFrom(store storage.Storage, name string) error {
	r, err := store.Open(name)
	if err != nil {
		return fmt.Errorf("load map %s: %w", name, err)
	}
	defer r.Close()
	if err := m.Load(r); err != nil {
		return fmt.Errorf("load map %s: %w", name, err)
	}
	return nil
}
