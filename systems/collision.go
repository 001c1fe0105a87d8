package systems

import (
	"math"

	"github.com/automoto/tilecore/components"
	"github.com/automoto/tilecore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// resolveHorizontalCollision moves object by the body speed until it touches
// a solid in its path.
func resolveHorizontalCollision(body *components.BodyData, object *resolv.Object) {
	dx := body.SpeedX
	if dx == 0 {
		return
	}

	check := object.Check(dx, 0, tags.ResolvSolid)
	if check == nil {
		object.X += dx
		return
	}

	for _, solid := range check.ObjectsByTags(tags.ResolvSolid) {
		if !overlapsVertically(object, solid) {
			continue
		}
		contact := check.ContactWithObject(solid).X()
		if blocks(contact, dx) {
			dx = contact
			body.SpeedX = 0
		}
	}

	object.X += dx
}

// resolveVerticalCollision moves object by the body speed and records the
// solid it lands on.
func resolveVerticalCollision(body *components.BodyData, object *resolv.Object) {
	body.OnGround = nil
	dy := body.SpeedY
	if dy == 0 {
		return
	}

	check := object.Check(0, dy, tags.ResolvSolid)
	if check == nil {
		object.Y += dy
		return
	}

	falling := dy < 0

	for _, solid := range check.ObjectsByTags(tags.ResolvSolid) {
		if !overlapsHorizontally(object, solid) {
			continue
		}
		contact := check.ContactWithObject(solid).Y()
		if !blocks(contact, dy) {
			continue
		}
		dy = contact
		body.SpeedY = 0
		if falling {
			body.OnGround = solid
		}
	}

	object.Y += dy
}

// blocks reports whether a solid needing contact to be reached stops a
// move of delta. Solids behind the mover never block.
func blocks(contact, delta float64) bool {
	if contact != 0 && (contact < 0) != (delta < 0) {
		return false
	}
	return math.Abs(contact) <= math.Abs(delta)
}

func overlapsVertically(object, solid *resolv.Object) bool {
	return object.Y+object.H > solid.Y && object.Y < solid.Y+solid.H
}

func overlapsHorizontally(object, solid *resolv.Object) bool {
	return object.X+object.W > solid.X && object.X < solid.X+solid.W
}

// UpdateCollidables refreshes every collision model from its transform and
// reports each model touching another to its listeners.
func UpdateCollidables(ecs *ecs.ECS) {
	var entries []*donburi.Entry
	components.Collidable.Each(ecs.World, func(e *donburi.Entry) {
		if e.HasComponent(components.Contacts) {
			contacts := components.Contacts.Get(e)
			contacts.Last = contacts.Last[:0]
		}
		col := components.Collidable.Get(e)
		col.Update(components.Transform.Get(e))
		entries = append(entries, e)
	})

	for i, a := range entries {
		ma := components.Collidable.Get(a).Model
		for _, b := range entries[i+1:] {
			mb := components.Collidable.Get(b).Model
			if shape, ok := ma.Collide(mb); ok {
				ma.NotifyCollided(mb, shape)
			}
			if shape, ok := mb.Collide(ma); ok {
				mb.NotifyCollided(ma, shape)
			}
		}
	}
}
