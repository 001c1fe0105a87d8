package factory

import (
	"github.com/automoto/tilecore/archetypes"
	"github.com/automoto/tilecore/components"
	"github.com/automoto/tilecore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSolid creates a static solid box tagged with its tile group.
func CreateSolid(ecs *ecs.ECS, x, y, w, h float64, group string) *donburi.Entry {
	solid := archetypes.Solid.Spawn(ecs)

	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid, group)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = solid // Link for O(1) lookup

	components.Object.SetValue(solid, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return solid
}
