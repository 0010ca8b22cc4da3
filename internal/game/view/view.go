// Package view computes which tiles the player can currently see.
package view

import (
	"github.com/cory-johannsen/ruins/internal/game/geom"
)

// Opacity reports whether sight is blocked at p. Positions off the map must
// report true.
type Opacity interface {
	InBounds(p geom.Vec2d) bool
	IsTransparent(p geom.Vec2d) bool
}

// octant multipliers mapping (col, row) sweep offsets to world offsets.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// View is the set of tiles visible from the last origin it was updated from.
// Walls that bound the lit area are themselves visible.
type View struct {
	visible *geom.Array2d[bool]
	origin  geom.Vec2d
}

// New creates an empty view for a w×h map.
func New(w, h int) *View {
	return &View{visible: geom.NewArray2d(w, h, false)}
}

// Visible reports whether p was visible at the last update.
func (v *View) Visible(p geom.Vec2d) bool {
	return v.visible.InBounds(p) && *v.visible.At(p)
}

// Size returns the width and height the view covers.
func (v *View) Size() (int, int) { return v.visible.Size() }

// Origin returns the position the view was last computed from.
func (v *View) Origin() geom.Vec2d { return v.origin }

// Count returns the number of visible tiles.
func (v *View) Count() int {
	n := 0
	v.visible.Each(func(_ geom.Vec2d, b *bool) bool {
		if *b {
			n++
		}
		return true
	})
	return n
}

// Update recomputes visibility from origin with recursive shadowcasting.
//
// Precondition: m has the same size the view was created with.
// Postcondition: Visible(origin) is true when origin is in bounds.
func (v *View) Update(m Opacity, origin geom.Vec2d, radius int) {
	v.visible.Each(func(_ geom.Vec2d, b *bool) bool {
		*b = false
		return true
	})
	v.origin = origin
	if !v.visible.InBounds(origin) {
		return
	}
	*v.visible.At(origin) = true
	for _, o := range octants {
		v.cast(m, origin, 1, 1.0, 0.0, radius, o)
	}
}

func (v *View) cast(m Opacity, c geom.Vec2d, row int, start, end float64, radius int, o [4]int) {
	if start < end {
		return
	}
	radiusSq := radius * radius
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			p := geom.V(c.X+dx*o[0]+dy*o[1], c.Y+dx*o[2]+dy*o[3])
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}
			if dx*dx+dy*dy <= radiusSq && v.visible.InBounds(p) {
				*v.visible.At(p) = true
			}

			opaque := !m.InBounds(p) || !m.IsTransparent(p)
			switch {
			case blocked && opaque:
				newStart = rSlope
			case blocked:
				blocked = false
				start = newStart
			case opaque && j < radius:
				blocked = true
				v.cast(m, c, j+1, start, lSlope, radius, o)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
