package factory

import (
	"fmt"

	"github.com/automoto/tilecore/archetypes"
	"github.com/automoto/tilecore/collision"
	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreateBody creates a w x h body at (x, y) with the given collision shapes.
// Collisions found by the collidable system are recorded in its Contacts.
func CreateBody(ecs *ecs.ECS, x, y, w, h float64, shapes ...*collision.Shape) (*donburi.Entry, error) {
	body := archetypes.Body.Spawn(ecs)

	components.Transform.Set(body, &components.TransformData{
		Position: math.Vec2{X: x, Y: y},
		Previous: math.Vec2{X: x, Y: y},
		Width:    w,
		Height:   h,
	})
	components.Body.Set(body, &components.BodyData{
		Gravity:  cfg.Physics.Gravity,
		MaxSpeed: cfg.Physics.MaxRunSpeed,
	})

	obj := resolv.NewObject(x, y, w, h, tags.ResolvBody)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = body
	components.Object.SetValue(body, components.ObjectData{Object: obj})
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	model, err := collision.NewModel(components.Transform.Get(body), shapes...)
	if err != nil {
		ecs.World.Remove(body.Entity())
		return nil, fmt.Errorf("create body: %w", err)
	}
	model.SetOrigin(collision.BottomLeft)
	model.SetCollisionVisibility(cfg.Debug.ShowCollision)
	model.Data = body
	model.AddListener(collision.ListenerFunc(func(other *collision.Model, shape *collision.Shape) {
		otherEntry, _ := other.Data.(*donburi.Entry)
		contacts := components.Contacts.Get(body)
		contacts.Last = append(contacts.Last, components.Contact{Other: otherEntry, Shape: shape})
	}))
	components.Collidable.Set(body, &components.CollidableData{Model: model})

	return body, nil
}
