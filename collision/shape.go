// Package collision detects swept overlaps between the named boxes of moving
// entities.
package collision

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"log"
)

var ErrInvalidShape = errors.New("invalid collision shape")

// Shape is a named box relative to an entity position. Shapes are immutable
// and shared between every entity using the same configuration.
type Shape struct {
	Name    string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
	// Mirror flips the offsets with the entity.
	Mirror bool
}

func NewShape(name string, offsetX, offsetY, width, height int, mirror bool) (*Shape, error) {
	if name == "" || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shape %q %dx%d: %w", name, width, height, ErrInvalidShape)
	}
	return &Shape{
		Name:    name,
		OffsetX: offsetX,
		OffsetY: offsetY,
		Width:   width,
		Height:  height,
		Mirror:  mirror,
	}, nil
}

// offsets returns the shape offsets under the given mirror state.
func (s *Shape) offsets(m Mirrorable) (float64, float64) {
	x, y := float64(s.OffsetX), float64(s.OffsetY)
	if !s.Mirror || m == nil {
		return x, y
	}
	switch m.Mirror() {
	case MirrorHorizontal:
		x = -x
	case MirrorVertical:
		y = -y
	}
	return x, y
}

type collisionsXML struct {
	XMLName xml.Name `xml:"collisions"`
	Shapes  []struct {
		Name    string `xml:"name,attr"`
		OffsetX int    `xml:"offsetX,attr"`
		OffsetY int    `xml:"offsetY,attr"`
		Width   int    `xml:"width,attr"`
		Height  int    `xml:"height,attr"`
		Mirror  bool   `xml:"mirror,attr"`
	} `xml:"collision"`
}

// LoadShapes reads the collision shapes declared in an XML config, in
// declaration order.
func LoadShapes(fsys fs.FS, name string) ([]*Shape, error) {
	log.Printf("Loading collisions from: %s", name)

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load collisions: %w", err)
	}
	var doc collisionsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load collisions %s: %w", name, err)
	}

	shapes := make([]*Shape, 0, len(doc.Shapes))
	seen := make(map[string]struct{}, len(doc.Shapes))
	for _, c := range doc.Shapes {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("load collisions %s: %q declared twice: %w", name, c.Name, ErrInvalidShape)
		}
		seen[c.Name] = struct{}{}
		shape, err := NewShape(c.Name, c.OffsetX, c.OffsetY, c.Width, c.Height, c.Mirror)
		if err != nil {
			return nil, fmt.Errorf("load collisions %s: %w", name, err)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}
