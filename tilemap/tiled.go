package tilemap

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/lafriks/go-tiled"
)

// groupProperty is the tileset tile property naming a tile's group in
// Tiled maps.
const groupProperty = "group"

func loadTiled(fsys fs.FS, name string) (*tiled.Map, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, &ConfigError{Path: name, Err: fmt.Errorf("load TMX: %w", err)}
	}
	return levelMap, nil
}

// readTiledSheets uses the map tile size and one sheet per tileset, in
// tileset order.
func readTiledSheets(fsys fs.FS, name string) (SheetsConfig, error) {
	levelMap, err := loadTiled(fsys, name)
	if err != nil {
		return SheetsConfig{}, err
	}

	cfg := SheetsConfig{
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}
	for _, ts := range levelMap.Tilesets {
		if ts.Image == nil || ts.Image.Source == "" {
			return SheetsConfig{}, configErr(name, "tileset %s has no single image: %w", ts.Name, ErrInvalidArgument)
		}
		// Images of external tilesets are relative to the .tsx file.
		dir := path.Dir(name)
		if ts.Source != "" {
			dir = path.Join(dir, path.Dir(ts.Source))
		}
		cfg.Files = append(cfg.Files, path.Join(dir, ts.Image.Source))
	}
	return cfg, nil
}

// readTiledGroups builds one "tiles" group per distinct group property value,
// in order of first appearance across tilesets.
func readTiledGroups(fsys fs.FS, name string) ([]GroupConfig, error) {
	levelMap, err := loadTiled(fsys, name)
	if err != nil {
		return nil, err
	}

	var out []GroupConfig
	index := make(map[string]int)
	for sheet, ts := range levelMap.Tilesets {
		for _, tt := range ts.Tiles {
			group := tt.Properties.GetString(groupProperty)
			if group == "" {
				continue
			}
			i, ok := index[group]
			if !ok {
				i = len(out)
				index[group] = i
				out = append(out, GroupConfig{Name: group, Type: "tiles"})
			}
			out[i].Tiles = append(out[i].Tiles, TileRef{Sheet: sheet, Number: int(tt.ID)})
		}
	}
	return out, nil
}
