package tags

import "github.com/yohamta/donburi"

var (
	Body  = donburi.NewTag().SetName("Body")
	Solid = donburi.NewTag().SetName("Solid")
	// Focus marks the entity the camera follows.
	Focus = donburi.NewTag().SetName("Focus")
)

// Resolv tags for tile physics. Solid tile objects also carry their tile
// group name.
const (
	ResolvSolid = "solid"
	ResolvBody  = "body"
)
