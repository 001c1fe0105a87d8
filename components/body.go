package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// BodyData is a box falling and sliding against solid tiles.
type BodyData struct {
	SpeedX   float64
	SpeedY   float64
	Gravity  float64
	MaxSpeed float64
	OnGround *resolv.Object
}

var Body = donburi.NewComponentType[BodyData]()
