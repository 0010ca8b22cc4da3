// Package geom provides grid coordinates, directions and the dense 2D arrays that
// back map layers.
package geom

// Vec2d is a tile coordinate.
type Vec2d struct {
	X, Y int
}

// V returns Vec2d{x, y}.
func V(x, y int) Vec2d { return Vec2d{X: x, Y: y} }

// Add returns v + o.
func (v Vec2d) Add(o Vec2d) Vec2d { return Vec2d{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2d) Sub(o Vec2d) Vec2d { return Vec2d{X: v.X - o.X, Y: v.Y - o.Y} }

// IsZero reports whether v is the zero vector.
func (v Vec2d) IsZero() bool { return v.X == 0 && v.Y == 0 }

// MDistance returns the Chebyshev (king-move) distance between two tiles.
func (v Vec2d) MDistance(o Vec2d) int {
	return max(abs(v.X-o.X), abs(v.Y-o.Y))
}

// Sign returns a vector whose components are each -1, 0 or 1.
func (v Vec2d) Sign() Vec2d { return Vec2d{X: sign(v.X), Y: sign(v.Y)} }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Direction is one of the nine king-move offsets, including "none".
type Direction struct {
	HDir, VDir int
}

// The nine directions.
var (
	DirNone = Direction{0, 0}
	DirN    = Direction{0, -1}
	DirS    = Direction{0, 1}
	DirE    = Direction{1, 0}
	DirW    = Direction{-1, 0}
	DirNE   = Direction{1, -1}
	DirNW   = Direction{-1, -1}
	DirSE   = Direction{1, 1}
	DirSW   = Direction{-1, 1}
)

// AllDirections lists the eight non-null directions.
var AllDirections = []Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// AsVec returns the offset of d.
func (d Direction) AsVec() Vec2d { return Vec2d{X: d.HDir, Y: d.VDir} }

// IsNone reports whether d is the zero direction.
func (d Direction) IsNone() bool { return d.HDir == 0 && d.VDir == 0 }

// DirectionTo returns the single king-move step from a toward b.
func DirectionTo(a, b Vec2d) Direction {
	s := b.Sub(a).Sign()
	return Direction{HDir: s.X, VDir: s.Y}
}

// Array2d is a dense row-major grid.
type Array2d[T any] struct {
	w, h  int
	cells []T
}

// NewArray2d returns a w×h grid filled with fill.
//
// Precondition: w >= 0 and h >= 0.
func NewArray2d[T any](w, h int, fill T) *Array2d[T] {
	cells := make([]T, w*h)
	for i := range cells {
		cells[i] = fill
	}
	return &Array2d[T]{w: w, h: h, cells: cells}
}

// Size returns the width and height.
func (a *Array2d[T]) Size() (int, int) { return a.w, a.h }

// InBounds reports whether p lies on the grid.
func (a *Array2d[T]) InBounds(p Vec2d) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < a.w && p.Y < a.h
}

// At returns a pointer to the cell at p. Panics if p is out of bounds.
func (a *Array2d[T]) At(p Vec2d) *T {
	if !a.InBounds(p) {
		panic("geom: Array2d index out of bounds")
	}
	return &a.cells[p.Y*a.w+p.X]
}

// Each calls fn for every cell in row-major order until fn returns false.
func (a *Array2d[T]) Each(fn func(p Vec2d, v *T) bool) {
	for y := 0; y < a.h; y++ {
		for x := 0; x < a.w; x++ {
			if !fn(Vec2d{X: x, Y: y}, &a.cells[y*a.w+x]) {
				return
			}
		}
	}
}

// Rect is an axis-aligned rectangle with inclusive corners.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center tile of r.
func (r Rect) Center() Vec2d { return Vec2d{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2} }

// Intersects reports whether r overlaps o, counting touching edges.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2d) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Line returns the tiles on the Bresenham line from a to b, excluding a and
// including b.
func Line(a, b Vec2d) []Vec2d {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	var out []Vec2d
	p := a
	for p != b {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
		out = append(out, p)
	}
	return out
}
