package factory

import (
	"slices"

	"github.com/automoto/tilecore/archetypes"
	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/render"
	"github.com/automoto/tilecore/tilemap"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateMap adds the loaded map to the world.
func CreateMap(ecs *ecs.ECS, m *tilemap.Map) *donburi.Entry {
	entry := archetypes.TileMap.Spawn(ecs)
	components.TileMap.Set(entry, &components.TileMapData{
		Map:   m,
		Cache: render.NewCache(),
	})
	if f, err := m.Feature(tilemap.MinimapFeature); err == nil {
		if mini, ok := f.(*tilemap.Minimap); ok {
			mini.Refresh(m)
		}
	}
	return entry
}

// CreateSpace creates the resolv space solids and bodies are added to. Only
// one space is looked up per world.
func CreateSpace(ecs *ecs.ECS, width, height, cellWidth, cellHeight int) *donburi.Entry {
	entry := archetypes.Space.Spawn(ecs)
	components.Space.Set(entry, resolv.NewSpace(width, height, cellWidth, cellHeight))
	return entry
}

// CreateTileSpace creates the resolv space covering m and one solid object
// per tile of a solid group.
func CreateTileSpace(ecs *ecs.ECS, m *tilemap.Map) *donburi.Entry {
	space := CreateSpace(ecs, m.Width(), m.Height(), cfg.Map.SpaceCellW, cfg.Map.SpaceCellH)
	m.Each(func(_, _ int, tile *tilemap.Tile) {
		if !slices.Contains(cfg.Physics.SolidGroups, tile.Group) {
			return
		}
		CreateSolid(ecs,
			float64(tile.X), float64(tile.Y),
			float64(tile.Width), float64(tile.Height),
			tile.Group,
		)
	})
	return space
}
