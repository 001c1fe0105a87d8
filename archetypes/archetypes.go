package archetypes

import (
	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	TileMap = newArchetype(
		components.TileMap,
	)
	Space = newArchetype(
		components.Space,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Solid = newArchetype(
		tags.Solid,
		components.Object,
	)
	Body = newArchetype(
		tags.Body,
		components.Transform,
		components.Object,
		components.Body,
		components.Collidable,
		components.Contacts,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
