package systems

import (
	"fmt"

	"github.com/automoto/tilecore/components"
	cfg "github.com/automoto/tilecore/config"
	"github.com/automoto/tilecore/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 8
	hudLineHeight = 14
)

// DrawHUD prints the map size and the tile under the cursor in the top-left
// corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	mapEntry, ok := components.TileMap.First(ecs.World)
	if !ok {
		return
	}
	m := components.TileMap.Get(mapEntry)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := ViewOf(ecs, width, height)

	lines := []string{
		fmt.Sprintf("map %dx%d tiles, %d placed, %d sheets", m.InTileWidth(), m.InTileHeight(), m.TilesCount(), m.SheetsCount()),
		fmt.Sprintf("view %.0f,%.0f", view.X, view.Y),
	}

	cx, cy := ebiten.CursorPosition()
	wx, wy := view.ToWorld(cx, cy)
	if tile := m.TileAt(wx, wy); tile != nil {
		lines = append(lines, fmt.Sprintf("%s group=%q", tile, tile.Group))
	}

	face := fonts.HUD.Get()
	for i, line := range lines {
		text.Draw(screen, line, face, hudMargin, hudMargin+(i+1)*hudLineHeight, cfg.White)
	}

	face = fonts.HUDSmall.Get()
	text.Draw(screen, "arrows: pan  F1: collisions  F2: grid", face, hudMargin, height-hudMargin, cfg.Yellow)
}
