package systems

import (
	"image/color"

	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/render"
	"github.com/automoto/tilecore/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawGrid draws the tile grid over the visible part of the map.
func DrawGrid(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowGrid {
		return
	}
	mapEntry, ok := components.TileMap.First(ecs.World)
	if !ok {
		return
	}
	m := components.TileMap.Get(mapEntry)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := ViewOf(ecs, width, height)

	fromTX, fromTY, toTX, toTY := m.VisibleRange(view)
	tw, th := float64(m.TileWidth()), float64(m.TileHeight())
	for tx := fromTX; tx <= toTX+1; tx++ {
		x, _ := view.ToScreen(float64(tx)*tw, 0, 0)
		vector.FillRect(screen, float32(x), 0, 1, float32(height), cfg.GridColor, false)
	}
	for ty := fromTY; ty <= toTY+1; ty++ {
		_, y := view.ToScreen(0, float64(ty)*th, 0)
		vector.FillRect(screen, 0, float32(y), float32(width), 1, cfg.GridColor, false)
	}
}

// DrawCollisions outlines the resolv objects of the space and the boxes of
// every visible collision model.
func DrawCollisions(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowCollision {
		return
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := ViewOf(ecs, width, height)
	viewW, viewH := float64(width), float64(height)

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space := components.Space.Get(spaceEntry)
		for _, obj := range space.Objects() {
			// Cull objects outside viewport
			if obj.X+obj.W < view.X || obj.X > view.X+viewW || obj.Y+obj.H < view.Y || obj.Y > view.Y+viewH {
				continue
			}

			c := color.Color(cfg.Cyan)
			if obj.HasTags(tags.ResolvSolid) {
				c = cfg.Grey
			}
			x, y := view.ToScreen(obj.X, obj.Y, obj.H)
			render.StrokeRect(screen, float32(x), float32(y), float32(obj.W), float32(obj.H), c)
		}
	}

	components.Collidable.Each(ecs.World, func(e *donburi.Entry) {
		model := components.Collidable.Get(e)
		if !model.CollisionVisible() {
			return
		}
		c := cfg.Green
		if e.HasComponent(components.Contacts) && len(components.Contacts.Get(e).Last) > 0 {
			c = cfg.Red
		}
		for _, box := range model.Boxes() {
			r := box.Rect
			x, y := view.ToScreen(r.X, r.Y, r.H)
			render.StrokeRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), c)
		}
	})
}
