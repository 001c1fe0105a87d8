package components

import (
	"github.com/automoto/tilecore/render"
	"github.com/automoto/tilecore/tilemap"
	"github.com/yohamta/donburi"
)

type TileMapData struct {
	*tilemap.Map
	Cache *render.Cache
}

var TileMap = donburi.NewComponentType[TileMapData]()
