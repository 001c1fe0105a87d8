package main

import (
	"errors"
	"flag"
	"image"
	"io/fs"
	"log"
	"os"

	"github.com/automoto/tilecore/collision"
	"github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/fonts"
	"github.com/automoto/tilecore/scenes"
	"github.com/automoto/tilecore/storage"
	"github.com/automoto/tilecore/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(m *tilemap.Map, shapes []*collision.Shape) *Game {
	if err := fonts.LoadDefaults(config.Debug.FontSize); err != nil {
		log.Printf("Warning: Could not load fonts: %v", err)
	}

	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewViewerScene(m, shapes),
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	dir := flag.String("dir", ".", "map directory holding the configs and sheet images")
	sheets := flag.String("sheets", config.Map.SheetsFile, "sheets config (.xml or .tmx) relative to -dir")
	groups := flag.String("groups", config.Map.GroupsFile, "groups config (.xml or .tmx) relative to -dir; empty to skip")
	mapName := flag.String("map", config.Map.MapFileName, "map file name in storage")
	useGdata := flag.Bool("gdata", false, "read maps from the user data directory instead of -dir")
	shapesFile := flag.String("shapes", "", "collision shapes config for the probe body, relative to -dir")
	width := flag.Int("w", 64, "width in tiles of the map created when -map is missing")
	height := flag.Int("h", 32, "height in tiles of the map created when -map is missing")
	minimap := flag.Bool("minimap", true, "show the map minimap")
	flag.Parse()

	fsys := os.DirFS(*dir)
	var store storage.Storage = storage.NewDir(*dir)
	if *useGdata {
		g, err := storage.OpenGdata("tilecore")
		if err != nil {
			log.Fatal(err)
		}
		store = g
	}

	m := tilemap.New(fsys)
	if err := m.LoadSheets(*sheets); err != nil {
		log.Fatal(err)
	}
	if *groups != "" {
		if err := m.LoadGroups(*groups); err != nil {
			log.Fatal(err)
		}
	}

	err := m.LoadFrom(store, *mapName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("Warning: %s not found, creating an empty %dx%d map", *mapName, *width, *height)
		if err := m.Create(*width, *height); err != nil {
			log.Fatal(err)
		}
		if err := m.SaveTo(store, *mapName); err != nil {
			log.Printf("Warning: Could not save %s: %v", *mapName, err)
		}
	case err != nil:
		log.Fatal(err)
	}

	if *minimap && !m.HasFeature(tilemap.MinimapFeature) {
		if _, err := m.CreateFeature(tilemap.MinimapFeature); err != nil {
			log.Printf("Warning: Could not create minimap: %v", err)
		}
	}

	var shapes []*collision.Shape
	if *shapesFile != "" {
		if shapes, err = collision.LoadShapes(fsys, *shapesFile); err != nil {
			log.Fatal(err)
		}
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("tilecore - " + *mapName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(NewGame(m, shapes)); err != nil {
		log.Fatal(err)
	}
}
