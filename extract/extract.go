// Package extract builds tile sheets out of level rips, keeping one copy of
// every distinct tile.
package extract

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"log"

	"github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/storage"
	_ "golang.org/x/image/bmp" // rips
)

var ErrInvalidConfig = errors.New("invalid extraction config")

// Config describes the rips and the sheets to produce.
type Config struct {
	TileWidth  int
	TileHeight int
	// Horizontal and Vertical are the sheet size in tiles.
	Horizontal int
	Vertical   int
	// Prefix is prepended to the sheet index in sheet names.
	Prefix string
	// Ignored marks rip tiles to skip when found on their top-left pixel.
	// Defaults to config.Extract.IgnoredColor.
	Ignored color.Color
	// Extension of the sheet names. Defaults to config.Extract.Extension.
	Extension string
}

// Result summarizes an extraction.
type Result struct {
	Sheets  []string
	Tiles   int
	Skipped []string
}

// Extractor scans rips tile by tile and copies every tile not seen yet to
// the current sheet, starting a new sheet when it is full.
type Extractor struct {
	cfg     Config
	ignored color.NRGBA
	rips    fs.FS
	out     storage.Storage
	paths   []string

	done   []*image.NRGBA
	sheet  *image.NRGBA
	placed int
	result Result
}

// New creates an extractor reading rips from rips and writing sheets to out.
func New(cfg Config, rips fs.FS, out storage.Storage) (*Extractor, error) {
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 || cfg.Horizontal <= 0 || cfg.Vertical <= 0 {
		return nil, fmt.Errorf("tile %dx%d, sheet %dx%d: %w",
			cfg.TileWidth, cfg.TileHeight, cfg.Horizontal, cfg.Vertical, ErrInvalidConfig)
	}
	if rips == nil || out == nil {
		return nil, fmt.Errorf("missing rips or output: %w", ErrInvalidConfig)
	}
	if cfg.Ignored == nil {
		cfg.Ignored = config.Extract.IgnoredColor
	}
	if cfg.Extension == "" {
		cfg.Extension = config.Extract.Extension
	}
	return &Extractor{
		cfg:     cfg,
		ignored: color.NRGBAModel.Convert(cfg.Ignored).(color.NRGBA),
		rips:    rips,
		out:     out,
	}, nil
}

// AddRip queues a rip image for the next Start.
func (e *Extractor) AddRip(path string) {
	e.paths = append(e.paths, path)
}

// SheetName returns the name of sheet index.
func (e *Extractor) SheetName(index int) string {
	return fmt.Sprintf("%s%d%s", e.cfg.Prefix, index, e.cfg.Extension)
}

// Start processes the queued rips in order. A rip that cannot be read is
// logged and skipped. Sheets are written as soon as they are full and the
// last one at the end; a write failure stops the extraction, leaving the
// sheets already written in place.
func (e *Extractor) Start() (Result, error) {
	e.done = nil
	e.sheet = e.newSheet()
	e.placed = 0
	e.result = Result{}

	for _, path := range e.paths {
		rip, err := e.decodeRip(path)
		if err != nil {
			log.Printf("Warning: skipping rip %s: %v", path, err)
			e.result.Skipped = append(e.result.Skipped, path)
			continue
		}
		if err := e.proceed(rip); err != nil {
			return e.result, err
		}
	}
	if err := e.save(); err != nil {
		return e.result, err
	}
	return e.result, nil
}

func (e *Extractor) decodeRip(path string) (*image.NRGBA, error) {
	f, err := e.rips.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts img pixel by pixel so that sources holding
// non-premultiplied colors, such as palettes with transparent entries, keep
// the color of their transparent pixels.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}
	return n
}

func (e *Extractor) newSheet() *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, e.cfg.Horizontal*e.cfg.TileWidth, e.cfg.Vertical*e.cfg.TileHeight))
}

// proceed scans the rip from the bottom row up, each row left to right.
func (e *Extractor) proceed(rip *image.NRGBA) error {
	b := rip.Bounds()
	columns := b.Dx() / e.cfg.TileWidth
	rows := b.Dy() / e.cfg.TileHeight
	log.Printf("Extracting %dx%d tiles", columns, rows)

	for v := rows - 1; v >= 0; v-- {
		for h := 0; h < columns; h++ {
			x := b.Min.X + h*e.cfg.TileWidth
			y := b.Min.Y + v*e.cfg.TileHeight
			if e.isIgnored(rip, x, y) || e.isExtracted(rip, x, y) {
				continue
			}
			if err := e.checkSheetFilled(); err != nil {
				return err
			}
			e.extract(rip, x, y)
		}
	}
	return nil
}

func (e *Extractor) isIgnored(rip *image.NRGBA, x, y int) bool {
	return rip.NRGBAAt(x, y) == e.ignored
}

// isExtracted compares the tile with every tile of the finished sheets and
// the tiles placed so far on the current one.
func (e *Extractor) isExtracted(rip *image.NRGBA, x, y int) bool {
	perSheet := e.cfg.Horizontal * e.cfg.Vertical
	for _, sheet := range e.done {
		if e.onSheet(rip, x, y, sheet, perSheet) {
			return true
		}
	}
	return e.onSheet(rip, x, y, e.sheet, e.placed)
}

func (e *Extractor) onSheet(rip *image.NRGBA, x, y int, sheet *image.NRGBA, count int) bool {
	for n := 0; n < count; n++ {
		sx, sy := e.slot(n)
		if CompareTile(e.cfg.TileWidth, e.cfg.TileHeight, rip, x, y, sheet, sx, sy) {
			return true
		}
	}
	return false
}

// slot returns the top-left pixel of slot n, left to right then top to
// bottom.
func (e *Extractor) slot(n int) (int, int) {
	return (n % e.cfg.Horizontal) * e.cfg.TileWidth, (n / e.cfg.Horizontal) * e.cfg.TileHeight
}

// checkSheetFilled writes the current sheet and starts a new one when no
// slot is left.
func (e *Extractor) checkSheetFilled() error {
	if e.placed < e.cfg.Horizontal*e.cfg.Vertical {
		return nil
	}
	if err := e.save(); err != nil {
		return err
	}
	e.done = append(e.done, e.sheet)
	e.sheet = e.newSheet()
	e.placed = 0
	return nil
}

func (e *Extractor) extract(rip *image.NRGBA, x, y int) {
	sx, sy := e.slot(e.placed)
	row := e.cfg.TileWidth * 4
	for dy := 0; dy < e.cfg.TileHeight; dy++ {
		src := rip.PixOffset(x, y+dy)
		dst := e.sheet.PixOffset(sx, sy+dy)
		copy(e.sheet.Pix[dst:dst+row], rip.Pix[src:src+row])
	}
	e.placed++
	e.result.Tiles++
}

func (e *Extractor) save() (err error) {
	name := e.SheetName(len(e.done))
	w, err := e.out.Create(name)
	if err != nil {
		return fmt.Errorf("save sheet %s: %w", name, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save sheet %s: %w", name, cerr)
		}
	}()
	if err := png.Encode(w, e.sheet); err != nil {
		return fmt.Errorf("save sheet %s: %w", name, err)
	}
	e.result.Sheets = append(e.result.Sheets, name)
	return nil
}

// CompareTile reports whether the tw x th tiles at (ax, ay) in a and (bx, by)
// in b match pixel by pixel.
func CompareTile(tw, th int, a *image.NRGBA, ax, ay int, b *image.NRGBA, bx, by int) bool {
	for x := 0; x < tw; x++ {
		for y := 0; y < th; y++ {
			if !PixelsMatch(a.NRGBAAt(ax+x, ay+y), b.NRGBAAt(bx+x, by+y)) {
				return false
			}
		}
	}
	return true
}

// PixelsMatch reports whether two pixels are equal, or share their color
// with one fully opaque and the other fully transparent.
func PixelsMatch(a, b color.NRGBA) bool {
	if a == b {
		return true
	}
	if a.R != b.R || a.G != b.G || a.B != b.B {
		return false
	}
	return (a.A == 0 && b.A == 0xff) || (a.A == 0xff && b.A == 0)
}
