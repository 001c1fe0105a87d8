package collision

import (
	"errors"
	"testing"
	"testing/fstest"
)

type transform struct {
	x, y, oldX, oldY float64
}

func (t *transform) X() float64 { return t.x }
func (t *transform) Y() float64 { return t.y }
func (t *transform) OldX() float64 { return t.oldX }
func (t *transform) OldY() float64 { return t.oldY }

func (t *transform) moveTo(x, y float64) {
	t.oldX, t.oldY = t.x, t.y
	t.x, t.y = x, y
}

type mirror Mirror

func (m mirror) Mirror() Mirror { return Mirror(m) }

func mustShape(t *testing.T, name string, ox, oy, w, h int, mirrored bool) *Shape {
	t.Helper()
	s, err := NewShape(name, ox, oy, w, h, mirrored)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustModel(t *testing.T, tr Transformable, shapes ...*Shape) *Model {
	t.Helper()
	m, err := NewModel(tr, shapes...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestStationaryOverlapCollides(t *testing.T) {
	body := mustShape(t, "body", 0, 0, 16, 16, false)
	a := mustModel(t, &transform{x: 10, y: 10, oldX: 10, oldY: 10}, body)
	b := mustModel(t, &transform{x: 10, y: 10, oldX: 10, oldY: 10}, body)
	a.Update(nil)
	b.Update(nil)

	got, ok := a.Collide(b)
	if !ok || got != body {
		t.Fatalf("Collide = %v, %v; want body", got, ok)
	}
	if _, ok := b.Collide(a); !ok {
		t.Error("collision not symmetric")
	}
}

func TestSweptCollisionCatchesTunneling(t *testing.T) {
	bullet := mustShape(t, "bullet", 0, 0, 2, 2, false)
	wall := mustShape(t, "wall", 0, 0, 1, 100, false)

	tr := &transform{x: 0, y: 10, oldX: 0, oldY: 10}
	a := mustModel(t, tr, bullet)
	b := mustModel(t, &transform{x: 50, y: 100, oldX: 50, oldY: 100}, wall)
	b.Update(nil)

	tr.moveTo(100, 10)
	a.Update(nil)
	if got, ok := a.Collide(b); !ok || got != bullet {
		t.Fatalf("bullet crossing wall: Collide = %v, %v", got, ok)
	}

	tr.moveTo(140, 10)
	a.Update(nil)
	if _, ok := a.Collide(b); ok {
		t.Error("bullet moving away from wall collided")
	}
}

func TestSweepStopsAtCurrentPosition(t *testing.T) {
	s := mustShape(t, "box", 0, 0, 10, 10, false)
	tr := &transform{}
	a := mustModel(t, tr, s)
	// b starts 0.3 past the right edge of a after a 2.5 move.
	b := mustModel(t, &transform{x: 12.8, y: 0, oldX: 12.8, oldY: 0}, s)
	b.Update(nil)

	tr.moveTo(2.5, 0)
	a.Update(nil)
	if _, ok := a.Collide(b); ok {
		t.Error("sweep overshot the current position")
	}
	tr.moveTo(5.5, 0)
	a.Update(nil)
	if _, ok := a.Collide(b); !ok {
		t.Error("sweep missed the current position")
	}
}

func TestSweepStartsAtPreviousPosition(t *testing.T) {
	s := mustShape(t, "box", 0, 0, 10, 10, false)
	tr := &transform{}
	a := mustModel(t, tr, s)
	b := mustModel(t, &transform{x: 9.5, y: 0, oldX: 9.5, oldY: 0}, s)
	b.Update(nil)

	// a overlapped b last frame and moved away.
	tr.moveTo(-30, 0)
	a.Update(nil)
	if _, ok := a.Collide(b); !ok {
		t.Error("overlap at the previous frame position was missed")
	}
}

func TestIgnoredPeerNeverCollides(t *testing.T) {
	body := mustShape(t, "body", 0, 0, 16, 16, false)
	a := mustModel(t, &transform{}, body)
	b := mustModel(t, &transform{}, body)
	a.Update(nil)
	b.Update(nil)

	a.AddIgnore(b)
	if _, ok := a.Collide(b); ok {
		t.Error("ignored peer collided")
	}
	if _, ok := b.Collide(a); !ok {
		t.Error("ignore is not one-way")
	}
	a.RemoveIgnore(b)
	if _, ok := a.Collide(b); !ok {
		t.Error("peer still ignored after RemoveIgnore")
	}
}

func TestFirstShapeInOrderWins(t *testing.T) {
	head := mustShape(t, "head", 0, 20, 8, 8, false)
	feet := mustShape(t, "feet", 0, 0, 8, 8, false)
	a := mustModel(t, &transform{}, head, feet)
	target := mustModel(t, &transform{}, mustShape(t, "floor", -50, 50, 100, 100, false))
	a.Update(nil)
	target.Update(nil)

	if got, _ := a.Collide(target); got != head {
		t.Errorf("first shape = %v, want head", got)
	}
	if shapes := a.Shapes(); len(shapes) != 2 || shapes[1] != feet {
		t.Errorf("Shapes() = %v", shapes)
	}
}

func TestDisabledModelKeepsBoxesAndReportsNothing(t *testing.T) {
	s := mustShape(t, "body", 0, 0, 4, 4, false)
	tr := &transform{x: 1, y: 1, oldX: 1, oldY: 1}
	a := mustModel(t, tr, s)
	b := mustModel(t, &transform{x: 1, y: 1, oldX: 1, oldY: 1}, s)
	a.Update(nil)
	b.Update(nil)

	a.SetEnabled(false)
	tr.moveTo(90, 90)
	a.Update(nil)
	if a.Box(s).Rect.X != 1 {
		t.Errorf("disabled box moved to %v", a.Box(s).Rect)
	}
	if _, ok := a.Collide(b); ok {
		t.Error("disabled model collided")
	}
	if _, ok := b.Collide(a); ok {
		t.Error("collided with a disabled model")
	}
}

func TestUpdateOffsetsAndOrigin(t *testing.T) {
	tests := []struct {
		name   string
		shape  *Shape
		origin Origin
		mirror Mirrorable
		want   Rect
	}{
		{"top left", mustShape(t, "a", 2, 3, 4, 6, false), TopLeft, nil, Rect{12, 7, 4, 6}},
		{"bottom middle", mustShape(t, "a", 2, 3, 4, 6, false), BottomMiddle, nil, Rect{10, 13, 4, 6}},
		{"middle", mustShape(t, "a", 0, 0, 4, 6, false), Middle, nil, Rect{8, 7, 4, 6}},
		{"horizontal mirror", mustShape(t, "a", 2, 3, 4, 6, true), BottomLeft, mirror(MirrorHorizontal), Rect{8, 13, 4, 6}},
		{"vertical mirror", mustShape(t, "a", 2, 3, 4, 6, true), BottomLeft, mirror(MirrorVertical), Rect{12, 7, 4, 6}},
		{"not mirrorable", mustShape(t, "a", 2, 3, 4, 6, false), BottomLeft, mirror(MirrorHorizontal), Rect{12, 13, 4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The previous frame position is what boxes follow.
			m := mustModel(t, &transform{x: 99, y: 99, oldX: 10, oldY: 10}, tt.shape)
			m.SetOrigin(tt.origin)
			m.Update(tt.mirror)
			if got := m.Box(tt.shape).Rect; got != tt.want {
				t.Errorf("box = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNotifyCollided(t *testing.T) {
	s := mustShape(t, "body", 0, 0, 4, 4, false)
	a := mustModel(t, &transform{}, s)
	b := mustModel(t, &transform{}, s)

	var calls []string
	a.AddListener(ListenerFunc(func(other *Model, shape *Shape) {
		if other == b {
			calls = append(calls, "first:"+shape.Name)
		}
	}))
	a.AddListener(ListenerFunc(func(*Model, *Shape) { calls = append(calls, "second") }))

	a.NotifyCollided(b, s)
	if len(calls) != 2 || calls[0] != "first:body" || calls[1] != "second" {
		t.Errorf("calls = %v", calls)
	}
}

func TestInvalidShapes(t *testing.T) {
	if _, err := NewShape("a", 0, 0, 0, 4, false); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("zero width = %v", err)
	}
	if _, err := NewShape("", 0, 0, 4, 4, false); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("no name = %v", err)
	}
	if _, err := NewModel(nil); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("nil transform = %v", err)
	}
}

const playerCollisions = `<collisions>
  <collision name="body" offsetX="0" offsetY="0" width="16" height="24" mirror="true"/>
  <collision name="attack" offsetX="12" offsetY="8" width="10" height="6"/>
</collisions>`

func TestLoadShapes(t *testing.T) {
	fsys := fstest.MapFS{
		"objects/player.xml": {Data: []byte(playerCollisions)},
		"objects/bad.xml":    {Data: []byte(`<collisions><collision name="x" width="0" height="3"/></collisions>`)},
		"objects/dup.xml":    {Data: []byte(`<collisions><collision name="x" width="1" height="3"/><collision name="x" width="1" height="3"/></collisions>`)},
	}

	shapes, err := LoadShapes(fsys, "objects/player.xml")
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	want := Shape{Name: "attack", OffsetX: 12, OffsetY: 8, Width: 10, Height: 6}
	if *shapes[1] != want || !shapes[0].Mirror || shapes[0].Height != 24 {
		t.Errorf("shapes = %+v %+v", *shapes[0], *shapes[1])
	}

	for _, name := range []string{"objects/bad.xml", "objects/dup.xml"} {
		if _, err := LoadShapes(fsys, name); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("LoadShapes(%s) = %v", name, err)
		}
	}
}
