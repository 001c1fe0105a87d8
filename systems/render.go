package systems

import (
	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/render"
	"github.com/automoto/tilecore/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const minimapMargin = 8

// DrawMap renders the visible tiles of the map.
func DrawMap(ecs *ecs.ECS, screen *ebiten.Image) {
	mapEntry, ok := components.TileMap.First(ecs.World)
	if !ok {
		return
	}
	m := components.TileMap.Get(mapEntry)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	m.Render(render.NewScreen(screen, m.Cache), ViewOf(ecs, width, height))
}

// DrawMinimap draws the map minimap in the top-right corner when the map
// carries one.
func DrawMinimap(ecs *ecs.ECS, screen *ebiten.Image) {
	mapEntry, ok := components.TileMap.First(ecs.World)
	if !ok {
		return
	}
	m := components.TileMap.Get(mapEntry)
	f, err := m.Feature(tilemap.MinimapFeature)
	if err != nil {
		return
	}
	mini, ok := f.(*tilemap.Minimap)
	if !ok || mini.Image() == nil {
		return
	}

	img := mini.Image()
	b := img.Bounds()
	x := screen.Bounds().Dx() - b.Dx() - minimapMargin
	render.NewScreen(screen, m.Cache).DrawImage(img, b, x, minimapMargin)
	render.StrokeRect(screen, float32(x-1), float32(minimapMargin-1), float32(b.Dx()+2), float32(b.Dy()+2), cfg.Grey)
}
