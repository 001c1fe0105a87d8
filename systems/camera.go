package systems

import (
	"math"

	"github.com/automoto/tilecore/components"
	"github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/tags"
	"github.com/automoto/tilecore/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera follows the focused entity and advances any running pan.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	dt := float32(1 / float64(ebiten.TPS()))
	if camera.PanX != nil {
		x, done := camera.PanX.Update(dt)
		camera.Offset.X = float64(x)
		if done {
			camera.PanX = nil
		}
	}
	if camera.PanY != nil {
		y, done := camera.PanY.Update(dt)
		camera.Offset.Y = float64(y)
		if done {
			camera.PanY = nil
		}
	}

	focusEntry, ok := tags.Focus.First(e.World)
	if !ok || !focusEntry.HasComponent(components.Transform) {
		return
	}
	transform := components.Transform.Get(focusEntry)
	targetX := transform.Position.X + transform.Width/2
	targetY := transform.Position.Y + transform.Height/2

	// Center the camera on the target, with some smoothing.
	camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
}

// PanCamera starts a tweened move of the camera offset by (dx, dy).
func PanCamera(e *ecs.ECS, dx, dy float64) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	if dx != 0 {
		from := camera.Offset.X
		camera.PanX = gween.New(float32(from), float32(from+dx), config.Camera.PanDuration, ease.OutCubic)
	}
	if dy != 0 {
		from := camera.Offset.Y
		camera.PanY = gween.New(float32(from), float32(from+dy), config.Camera.PanDuration, ease.OutCubic)
	}
}

// ViewOf returns the part of the map seen by the camera on a width x height
// screen. The view never leaves the map unless the map is smaller than the
// screen, in which case it is centered.
func ViewOf(e *ecs.ECS, width, height int) tilemap.Viewport {
	view := tilemap.Viewport{Width: width, Height: height}
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view
	}
	camera := components.Camera.Get(cameraEntry)
	centerX := camera.Position.X + camera.Offset.X
	centerY := camera.Position.Y + camera.Offset.Y

	if mapEntry, ok := components.TileMap.First(e.World); ok {
		m := components.TileMap.Get(mapEntry)
		centerX = clampCenter(centerX, float64(width), float64(m.Width()))
		centerY = clampCenter(centerY, float64(height), float64(m.Height()))
	}

	view.X = centerX - float64(width)/2
	view.Y = centerY - float64(height)/2
	return view
}

func clampCenter(center, screen, size float64) float64 {
	if size <= screen {
		return size / 2
	}
	return math.Max(screen/2, math.Min(size-screen/2, center))
}
