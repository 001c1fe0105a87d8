package components

import (
	"github.com/automoto/tilecore/collision"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// TransformData is the world position of an entity for the current and the
// previous frame. World ordinates grow upwards.
type TransformData struct {
	Position math.Vec2
	Previous math.Vec2
	Width    float64
	Height   float64
	Flip     collision.Mirror
}

// MoveTo records the current position as previous and moves to (x, y).
func (t *TransformData) MoveTo(x, y float64) {
	t.Previous = t.Position
	t.Position = math.Vec2{X: x, Y: y}
}

func (t *TransformData) X() float64 { return t.Position.X }
func (t *TransformData) Y() float64 { return t.Position.Y }
func (t *TransformData) OldX() float64 { return t.Previous.X }
func (t *TransformData) OldY() float64 { return t.Previous.Y }

func (t *TransformData) Mirror() collision.Mirror { return t.Flip }

var Transform = donburi.NewComponentType[TransformData]()
