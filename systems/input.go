package systems

import (
	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateInput pans the camera with the arrow keys and toggles the debug
// overlays with F1 and F2.
func UpdateInput(ecs *ecs.ECS) {
	step := cfg.Camera.PanStep
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		PanCamera(ecs, -step, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		PanCamera(ecs, step, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		PanCamera(ecs, 0, step)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		PanCamera(ecs, 0, -step)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		SetCollisionVisibility(ecs, !cfg.Debug.ShowCollision)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		cfg.Debug.ShowGrid = !cfg.Debug.ShowGrid
	}
}

// SetCollisionVisibility shows or hides the collision boxes of every model.
func SetCollisionVisibility(ecs *ecs.ECS, visible bool) {
	cfg.Debug.ShowCollision = visible
	components.Collidable.Each(ecs.World, func(e *donburi.Entry) {
		components.Collidable.Get(e).SetCollisionVisibility(visible)
	})
}
