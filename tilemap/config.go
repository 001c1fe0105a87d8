package tilemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// SheetsConfig is a declared list of sheet images sharing one tile size.
// Files are paths inside the map's file system.
type SheetsConfig struct {
	TileWidth  int
	TileHeight int
	Kind       string
	Files      []string
	// Features are tags of registered features to attach on load.
	Features []string
}

// ConfigFormat reads sheets and groups configs of one file format.
type ConfigFormat struct {
	Sheets func(fsys fs.FS, name string) (SheetsConfig, error)
	Groups func(fsys fs.FS, name string) ([]GroupConfig, error)
}

var (
	formatsMu sync.RWMutex
	formats   = map[string]ConfigFormat{
		".xml": {Sheets: readXMLSheets, Groups: readXMLGroups},
		".tmx": {Sheets: readTiledSheets, Groups: readTiledGroups},
	}
)

// RegisterConfigFormat associates a file extension (".xml") with a format.
func RegisterConfigFormat(ext string, f ConfigFormat) {
	if f.Sheets == nil || f.Groups == nil {
		panic("tilemap: incomplete config format for " + ext)
	}
	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats[strings.ToLower(ext)] = f
}

func formatFor(name string) (ConfigFormat, error) {
	ext := strings.ToLower(path.Ext(name))
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	f, ok := formats[ext]
	if !ok {
		return ConfigFormat{}, fmt.Errorf("extension %q: %w", ext, ErrUnknownFormat)
	}
	return f, nil
}

type sheetsXML struct {
	XMLName  xml.Name `xml:"sheets"`
	Kind     string   `xml:"kind,attr,omitempty"`
	TileSize struct {
		Width  int `xml:"width,attr"`
		Height int `xml:"height,attr"`
	} `xml:"tileSize"`
	Sheets   []string `xml:"sheet"`
	Features []string `xml:"feature"`
}

type groupsXML struct {
	XMLName xml.Name   `xml:"groups"`
	Groups  []groupXML `xml:"group"`
}

type groupXML struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Tiles []struct {
		Sheet  int `xml:"sheet,attr"`
		Number int `xml:"number,attr"`
	} `xml:"tile"`
}

func readXML(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return &ConfigError{Path: name, Err: err}
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return &ConfigError{Path: name, Err: err}
	}
	return nil
}

func readXMLSheets(fsys fs.FS, name string) (SheetsConfig, error) {
	var doc sheetsXML
	if err := readXML(fsys, name, &doc); err != nil {
		return SheetsConfig{}, err
	}

	dir := path.Dir(name)
	cfg := SheetsConfig{
		TileWidth:  doc.TileSize.Width,
		TileHeight: doc.TileSize.Height,
		Kind:       strings.TrimSpace(doc.Kind),
		Files:      make([]string, 0, len(doc.Sheets)),
	}
	for _, file := range doc.Sheets {
		file = strings.TrimSpace(file)
		if file == "" {
			return SheetsConfig{}, configErr(name, "empty sheet entry: %w", ErrInvalidArgument)
		}
		cfg.Files = append(cfg.Files, path.Join(dir, file))
	}
	for _, tag := range doc.Features {
		cfg.Features = append(cfg.Features, strings.TrimSpace(tag))
	}
	return cfg, nil
}

// WriteSheetsConfig writes cfg as an XML sheets config. Files are written as
// given and read back relative to the config directory.
func WriteSheetsConfig(w io.Writer, cfg SheetsConfig) error {
	doc := sheetsXML{Kind: cfg.Kind, Sheets: cfg.Files, Features: cfg.Features}
	doc.TileSize.Width = cfg.TileWidth
	doc.TileSize.Height = cfg.TileHeight

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sheets config: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write sheets config: %w", err)
	}
	return nil
}

func readXMLGroups(fsys fs.FS, name string) ([]GroupConfig, error) {
	var doc groupsXML
	if err := readXML(fsys, name, &doc); err != nil {
		return nil, err
	}

	out := make([]GroupConfig, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		cfg := GroupConfig{Attrs: make(map[string]string, len(g.Attrs))}
		for _, a := range g.Attrs {
			switch a.Name.Local {
			case "name":
				cfg.Name = a.Value
			case "type":
				cfg.Type = a.Value
			default:
				cfg.Attrs[a.Name.Local] = a.Value
			}
		}
		for _, t := range g.Tiles {
			cfg.Tiles = append(cfg.Tiles, TileRef{Sheet: t.Sheet, Number: t.Number})
		}
		out = append(out, cfg)
	}
	return out, nil
}
