package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/tilecore/collision"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/systems"
	"github.com/automoto/tilecore/systems/factory"
	"github.com/automoto/tilecore/tags"
	"github.com/automoto/tilecore/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ViewerScene shows a tile map with a probe body falling on its solid tiles.
type ViewerScene struct {
	ecs    *ecs.ECS
	tiles  *tilemap.Map
	shapes []*collision.Shape
	once   sync.Once
}

// NewViewerScene creates a scene for m. The probe body uses shapes, or a
// single box of one tile when none is given.
func NewViewerScene(m *tilemap.Map, shapes []*collision.Shape) *ViewerScene {
	return &ViewerScene{tiles: m, shapes: shapes}
}

func (vs *ViewerScene) Update() {
	vs.once.Do(vs.configure)
	vs.ecs.Update()
}

func (vs *ViewerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if vs.ecs == nil {
		return
	}
	vs.ecs.Draw(screen)
}

func (vs *ViewerScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateBodies)
	ecs.AddSystem(systems.UpdateCollidables)
	ecs.AddSystem(systems.UpdateCamera)

	ecs.AddRenderer(cfg.Default, systems.DrawMap)
	ecs.AddRenderer(cfg.Default, systems.DrawGrid)
	ecs.AddRenderer(cfg.Default, systems.DrawCollisions)
	ecs.AddRenderer(cfg.Default, systems.DrawMinimap)
	ecs.AddRenderer(cfg.Default, systems.DrawHUD)

	vs.ecs = ecs

	// The space must exist before any solid or body is created.
	factory.CreateMap(vs.ecs, vs.tiles)
	factory.CreateTileSpace(vs.ecs, vs.tiles)

	tw, th := float64(vs.tiles.TileWidth()), float64(vs.tiles.TileHeight())
	x := float64(vs.tiles.Width()) / 2
	y := float64(vs.tiles.Height()) - th
	factory.CreateCamera(vs.ecs, x, y)

	shapes := vs.shapes
	if len(shapes) == 0 {
		probe, err := collision.NewShape("probe", 0, 0, int(tw), int(th), false)
		if err != nil {
			log.Printf("Warning: no probe shape: %v", err)
			return
		}
		shapes = []*collision.Shape{probe}
	}
	body, err := factory.CreateBody(vs.ecs, x, y, tw, th, shapes...)
	if err != nil {
		log.Printf("Warning: could not create probe: %v", err)
		return
	}
	body.AddComponent(tags.Focus)
}
