package tilemap

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"sync"
)

// Feature is an optional capability attached to a map under a tag. Prepare
// is called when the feature is added. Features must not keep m: Load
// installs a new grid in the same Map value.
type Feature interface {
	Prepare(m *Map) error
}

// FeatureFactory creates a fresh feature.
type FeatureFactory func() Feature

// MinimapFeature is the tag of the built-in Minimap feature.
const MinimapFeature = "minimap"

var (
	featuresMu sync.RWMutex
	features   = map[string]FeatureFactory{
		MinimapFeature: func() Feature { return &Minimap{} },
	}
)

// RegisterFeature makes a feature factory available under tag. Sheets
// configs request features by tag.
func RegisterFeature(tag string, f FeatureFactory) {
	if f == nil {
		panic("tilemap: nil feature factory for " + tag)
	}
	featuresMu.Lock()
	defer featuresMu.Unlock()
	features[tag] = f
}

func featureFactory(tag string) (FeatureFactory, error) {
	featuresMu.RLock()
	defer featuresMu.RUnlock()
	f, ok := features[tag]
	if !ok {
		return nil, fmt.Errorf("feature %q: %w", tag, ErrUnknownFeature)
	}
	return f, nil
}

// FeatureTags lists the registered feature tags, sorted.
func FeatureTags() []string {
	featuresMu.RLock()
	defer featuresMu.RUnlock()
	out := make([]string, 0, len(features))
	for tag := range features {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

type taggedFeature struct {
	tag string
	Feature
}

// AddFeature prepares f and attaches it under tag. A feature already
// attached under tag is replaced in place.
func (m *Map) AddFeature(tag string, f Feature) error {
	if f == nil {
		return fmt.Errorf("add feature %q: %w", tag, ErrInvalidArgument)
	}
	if err := f.Prepare(m); err != nil {
		return fmt.Errorf("add feature %q: %w", tag, err)
	}
	for i, tf := range m.features {
		if tf.tag == tag {
			m.features[i].Feature = f
			return nil
		}
	}
	m.features = append(m.features, taggedFeature{tag: tag, Feature: f})
	return nil
}

// CreateFeature creates the feature registered under tag and adds it.
func (m *Map) CreateFeature(tag string) (Feature, error) {
	factory, err := featureFactory(tag)
	if err != nil {
		return nil, err
	}
	f := factory()
	if err := m.AddFeature(tag, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Feature returns the feature attached under tag.
func (m *Map) Feature(tag string) (Feature, error) {
	for _, tf := range m.features {
		if tf.tag == tag {
			return tf.Feature, nil
		}
	}
	return nil, fmt.Errorf("feature %q: %w", tag, ErrFeatureMissing)
}

func (m *Map) HasFeature(tag string) bool {
	_, err := m.Feature(tag)
	return err == nil
}

// Features returns the attached features in the order they were added.
func (m *Map) Features() []Feature {
	out := make([]Feature, len(m.features))
	for i, tf := range m.features {
		out[i] = tf.Feature
	}
	return out
}

// Minimap draws the map with one pixel per tile, colored with the average
// color of the tile's sheet cell.
type Minimap struct {
	colors map[TileRef]color.NRGBA
	img    *image.NRGBA
}

func (mm *Minimap) Prepare(*Map) error {
	mm.colors = make(map[TileRef]color.NRGBA)
	mm.img = nil
	return nil
}

// Refresh redraws the minimap from the tiles of m. Row 0 of the map is the
// bottom row of the image. Empty cells are transparent.
func (mm *Minimap) Refresh(m *Map) *image.NRGBA {
	if mm.colors == nil {
		mm.colors = make(map[TileRef]color.NRGBA)
	}
	bounds := image.Rect(0, 0, m.widthInTile, m.heightInTile)
	if mm.img == nil || mm.img.Bounds() != bounds {
		mm.img = image.NewNRGBA(bounds)
	} else {
		clear(mm.img.Pix)
	}
	m.Each(func(tx, ty int, tile *Tile) {
		mm.img.SetNRGBA(tx, m.heightInTile-1-ty, mm.colorOf(m, tile))
	})
	return mm.img
}

// Image returns the last refreshed minimap, nil before the first Refresh.
func (mm *Minimap) Image() *image.NRGBA {
	return mm.img
}

func (mm *Minimap) colorOf(m *Map, tile *Tile) color.NRGBA {
	ref := TileRef{Sheet: tile.Sheet, Number: tile.Number}
	if c, ok := mm.colors[ref]; ok {
		return c
	}
	var c color.NRGBA
	if sheet, err := m.Sheet(tile.Sheet); err == nil && tile.Number >= 0 && tile.Number < sheet.Count() {
		c = averageColor(sheet.Image, sheet.TileBounds(tile.Number))
	}
	mm.colors[ref] = c
	return c
}

func averageColor(img image.Image, r image.Rectangle) color.NRGBA {
	var sr, sg, sb, sa, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			sa += int(c.A)
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}
