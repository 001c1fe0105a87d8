package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	Position math.Vec2 // World point at the center of the screen
	Offset   math.Vec2 // Manual pan added to Position
	PanX     *gween.Tween
	PanY     *gween.Tween
}

var Camera = donburi.NewComponentType[CameraData]()
