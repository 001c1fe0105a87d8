package tilemap

import (
	"fmt"
	"image"
	_ "image/png" // sheet images
	"io/fs"
	"log"
	"path"
	"sort"

	_ "golang.org/x/image/bmp" // sheet images
)

// Sheet is an image holding equally sized tiles, numbered left to right
// then top to bottom.
type Sheet struct {
	Name       string
	Image      image.Image
	TileWidth  int
	TileHeight int
	Columns    int
	Rows       int
}

// NewSheet slices img into tiles of the given size.
func NewSheet(name string, img image.Image, tileWidth, tileHeight int) (*Sheet, error) {
	if img == nil || tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("sheet %s: %w", name, ErrInvalidArgument)
	}
	b := img.Bounds()
	s := &Sheet{
		Name:       name,
		Image:      img,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Columns:    b.Dx() / tileWidth,
		Rows:       b.Dy() / tileHeight,
	}
	if s.Columns == 0 || s.Rows == 0 {
		return nil, fmt.Errorf("sheet %s: %dx%d image smaller than a %dx%d tile: %w",
			name, b.Dx(), b.Dy(), tileWidth, tileHeight, ErrInvalidArgument)
	}
	return s, nil
}

// Count returns the number of tiles in the sheet.
func (s *Sheet) Count() int {
	return s.Columns * s.Rows
}

// TileBounds returns the image rectangle of tile number n.
func (s *Sheet) TileBounds(n int) image.Rectangle {
	origin := s.Image.Bounds().Min
	x := origin.X + (n%s.Columns)*s.TileWidth
	y := origin.Y + (n/s.Columns)*s.TileHeight
	return image.Rect(x, y, x+s.TileWidth, y+s.TileHeight)
}

// SheetSource resolves sheet indices.
type SheetSource interface {
	Sheet(index int) (*Sheet, error)
}

// LoadSheets reads a sheets config, sets the tile size from it and replaces
// the sheet registry with the listed images, indexed in declaration order.
// Features named by the config are created and attached; an unknown feature
// tag fails before anything changes.
func (m *Map) LoadSheets(configPath string) error {
	log.Printf("Loading sheets from: %s", configPath)

	loader, err := formatFor(configPath)
	if err != nil {
		return &ConfigError{Path: configPath, Err: err}
	}
	cfg, err := loader.Sheets(m.fsys, configPath)
	if err != nil {
		return err
	}
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return configErr(configPath, "tile size %dx%d: %w", cfg.TileWidth, cfg.TileHeight, ErrInvalidArgument)
	}
	factory, err := TileKind(cfg.Kind)
	if err != nil {
		return &ConfigError{Path: configPath, Err: err}
	}

	created := make([]taggedFeature, 0, len(cfg.Features))
	for _, tag := range cfg.Features {
		newFeature, err := featureFactory(tag)
		if err != nil {
			return &ConfigError{Path: configPath, Err: err}
		}
		created = append(created, taggedFeature{tag: tag, Feature: newFeature()})
	}

	sheets := make(map[int]*Sheet, len(cfg.Files))
	for i, file := range cfg.Files {
		img, err := decodeImage(m.fsys, file)
		if err != nil {
			return &ConfigError{Path: configPath, Err: err}
		}
		sheet, err := NewSheet(path.Base(file), img, cfg.TileWidth, cfg.TileHeight)
		if err != nil {
			return &ConfigError{Path: configPath, Err: err}
		}
		sheets[i] = sheet
	}

	m.sheetsConfig = configPath
	m.tileWidth = cfg.TileWidth
	m.tileHeight = cfg.TileHeight
	m.factory = factory
	m.sheets = sheets

	for _, tf := range created {
		if err := m.AddFeature(tf.tag, tf.Feature); err != nil {
			return &ConfigError{Path: configPath, Err: err}
		}
	}
	return nil
}

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	return img, nil
}

// AddSheet registers a sheet under index, replacing any previous one.
func (m *Map) AddSheet(index int, sheet *Sheet) {
	m.sheets[index] = sheet
}

// Sheet returns the sheet registered under index.
func (m *Map) Sheet(index int) (*Sheet, error) {
	s, ok := m.sheets[index]
	if !ok {
		return nil, fmt.Errorf("sheet %d: %w", index, ErrSheetMissing)
	}
	return s, nil
}

// Sheets returns the registered sheet indices in increasing order.
func (m *Map) Sheets() []int {
	out := make([]int, 0, len(m.sheets))
	for i := range m.sheets {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SheetsCount returns the number of registered sheets.
func (m *Map) SheetsCount() int {
	return len(m.sheets)
}
