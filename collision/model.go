package collision

import (
	"fmt"
	"math"
)

// Box is the rectangle covered by a shape for the previous frame position of
// its entity.
type Box struct {
	Shape *Shape
	Rect  Rect
}

// Listener is notified when its model collides with another one.
type Listener interface {
	NotifyCollided(other *Model, shape *Shape)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(other *Model, shape *Shape)

func (f ListenerFunc) NotifyCollided(other *Model, shape *Shape) { f(other, shape) }

// Model holds the collision boxes of one entity. Boxes are recomputed in
// place by Update and tested by Collide. A Model is owned by the update loop
// and is not safe for concurrent use.
type Model struct {
	// Data is free for the owner, typically the entity the model belongs to.
	Data any

	transform     Transformable
	origin        Origin
	enabled       bool
	showCollision bool

	boxes     []*Box
	byShape   map[*Shape]*Box
	ignored   map[*Model]struct{}
	listeners []Listener
}

// NewModel creates an enabled model following t, with one box per shape.
func NewModel(t Transformable, shapes ...*Shape) (*Model, error) {
	if t == nil {
		return nil, fmt.Errorf("new collision model: nil transform: %w", ErrInvalidShape)
	}
	m := &Model{
		transform: t,
		origin:    TopLeft,
		enabled:   true,
		byShape:   make(map[*Shape]*Box),
		ignored:   make(map[*Model]struct{}),
	}
	for _, s := range shapes {
		if err := m.AddShape(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddShape adds a box for s. Adding the same shape twice is a no-op.
func (m *Model) AddShape(s *Shape) error {
	if s == nil || s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("add shape %v: %w", s, ErrInvalidShape)
	}
	if _, ok := m.byShape[s]; ok {
		return nil
	}
	box := &Box{Shape: s}
	m.boxes = append(m.boxes, box)
	m.byShape[s] = box
	return nil
}

func (m *Model) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// AddIgnore makes Collide report nothing against other.
func (m *Model) AddIgnore(other *Model) {
	m.ignored[other] = struct{}{}
}

func (m *Model) RemoveIgnore(other *Model) {
	delete(m.ignored, other)
}

func (m *Model) IsIgnored(other *Model) bool {
	_, ok := m.ignored[other]
	return ok
}

func (m *Model) SetOrigin(o Origin) { m.origin = o }
func (m *Model) SetEnabled(e bool) { m.enabled = e }
func (m *Model) Enabled() bool { return m.enabled }
func (m *Model) Origin() Origin { return m.origin }
func (m *Model) CollisionVisible() bool { return m.showCollision }

func (m *Model) SetCollisionVisibility(visible bool) {
	m.showCollision = visible
}

// Shapes returns the shapes in the order they were added.
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, len(m.boxes))
	for i, b := range m.boxes {
		out[i] = b.Shape
	}
	return out
}

// Boxes returns the boxes in shape order. They are updated in place.
func (m *Model) Boxes() []*Box {
	return m.boxes
}

// Box returns the box of shape s, or nil.
func (m *Model) Box(s *Shape) *Box {
	return m.byShape[s]
}

// Update places every box at the previous frame position of the entity,
// offset by its shape and anchored by the model origin. mirror may be nil.
// A disabled model keeps its boxes.
func (m *Model) Update(mirror Mirrorable) {
	if !m.enabled {
		return
	}
	for _, b := range m.boxes {
		offX, offY := b.Shape.offsets(mirror)
		w, h := float64(b.Shape.Width), float64(b.Shape.Height)
		b.Rect.Set(
			m.origin.X(m.transform.OldX()+offX, w),
			m.origin.Y(m.transform.OldY()+offY, h),
			w, h,
		)
	}
}

// Collide sweeps each box from its previous frame position to the current
// one in unit steps, both ends included, and returns the first shape of m
// found touching a box of other. A model that did not move is tested once at
// rest.
func (m *Model) Collide(other *Model) (*Shape, bool) {
	if other == nil || other == m || !m.enabled || !other.enabled || m.IsIgnored(other) {
		return nil, false
	}

	dx := m.transform.X() - m.transform.OldX()
	dy := m.transform.Y() - m.transform.OldY()
	norm := math.Sqrt(dx*dx + dy*dy)

	for _, b := range m.boxes {
		if norm == 0 {
			if other.touches(b.Rect) {
				return b.Shape, true
			}
			continue
		}

		sx, sy := dx/norm, dy/norm
		for count := 0.0; count-1 < norm; count++ {
			step := math.Min(count, norm)
			r := b.Rect
			r.Translate(sx*step, sy*step)
			if other.touches(r) {
				return b.Shape, true
			}
		}
	}
	return nil, false
}

func (m *Model) touches(r Rect) bool {
	for _, b := range m.boxes {
		if b.Rect.Intersects(r) || b.Rect.Contains(r) || r.Contains(b.Rect) {
			return true
		}
	}
	return false
}

// NotifyCollided tells every listener that m collided with other on shape.
func (m *Model) NotifyCollided(other *Model, shape *Shape) {
	for _, l := range m.listeners {
		l.NotifyCollided(other, shape)
	}
}
