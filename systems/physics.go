package systems

import (
	"math"

	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBodies applies gravity to every body, moves it against the solid
// tiles and copies the resolved position into its transform.
func UpdateBodies(ecs *ecs.ECS) {
	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		obj := components.Object.Get(e)

		body.SpeedX = math.Max(-body.MaxSpeed, math.Min(body.MaxSpeed, body.SpeedX))

		// World ordinates grow upwards, so gravity pulls towards negative Y.
		body.SpeedY -= body.Gravity
		body.SpeedY = math.Max(-cfg.Physics.MaxFallSpeed, math.Min(cfg.Physics.MaxRiseSpeed, body.SpeedY))

		resolveHorizontalCollision(body, obj.Object)
		resolveVerticalCollision(body, obj.Object)
		obj.Update()

		components.Transform.Get(e).MoveTo(obj.X, obj.Y)
	})
}
