package collision

// Rect is an axis-aligned box. X and Y are its minimum corner; ordinates grow
// upwards as on the tile map.
type Rect struct {
	X, Y, W, H float64
}

func (r *Rect) Set(x, y, w, h float64) {
	r.X, r.Y, r.W, r.H = x, y, w, h
}

func (r *Rect) Translate(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Intersects reports whether the interiors of r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Contains reports whether o lies inside r, edges included.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Origin says which point of a box an entity position refers to.
type Origin int

const (
	TopLeft Origin = iota
	TopMiddle
	BottomLeft
	BottomMiddle
	Middle
)

// X returns the left edge of a box of width w anchored at x.
func (o Origin) X(x, w float64) float64 {
	switch o {
	case TopMiddle, BottomMiddle, Middle:
		return x - w/2
	default:
		return x
	}
}

// Y returns the bottom edge of a box of height h anchored at y.
func (o Origin) Y(y, h float64) float64 {
	switch o {
	case TopLeft, TopMiddle:
		return y - h
	case Middle:
		return y - h/2
	default:
		return y
	}
}

// Mirror is the axis an entity is currently flipped on.
type Mirror int

const (
	MirrorNone Mirror = iota
	MirrorHorizontal
	MirrorVertical
)

// Mirrorable exposes the current mirror state of an entity.
type Mirrorable interface {
	Mirror() Mirror
}

// Transformable exposes the current and previous frame positions of an
// entity.
type Transformable interface {
	X() float64
	Y() float64
	OldX() float64
	OldY() float64
}
