package components

import (
	"github.com/automoto/tilecore/collision"
	"github.com/yohamta/donburi"
)

type CollidableData struct {
	*collision.Model
}

var Collidable = donburi.NewComponentType[CollidableData]()

// Contact is one collision reported during the last update.
type Contact struct {
	Other *donburi.Entry
	Shape *collision.Shape
}

// ContactsData lists the collisions of the last update. It is reset every
// frame before collidables are tested.
type ContactsData struct {
	Last []Contact
}

var Contacts = donburi.NewComponentType[ContactsData]()
