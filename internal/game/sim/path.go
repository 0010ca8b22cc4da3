package sim

import (
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
)

// searchOrder tries the straight directions first so that, among equally short
// paths, FirstStep prefers one that starts with a straight step.
var searchOrder = []geom.Direction{
	geom.DirN, geom.DirE, geom.DirS, geom.DirW,
	geom.DirNE, geom.DirSE, geom.DirSW, geom.DirNW,
}

// FirstStep searches breadth-first from from for the nearest tile satisfying
// goal and returns the first step of the shortest path to it. Tiles holding a
// character other than who are impassable unless they are the goal.
//
// Postcondition: returns false when no goal tile is reachable or from itself is
// a goal. When several shortest paths exist, a straight first step wins over a
// diagonal one.
func FirstStep(m *gamemap.Map, cat *catalog.Catalog, who chara.ID, from geom.Vec2d, goal func(geom.Vec2d) bool) (geom.Direction, bool) {
	if goal(from) {
		return geom.DirNone, false
	}
	w, h := m.Size()
	// first[p] is the step out of from that reaches p; DirNone marks unvisited.
	first := geom.NewArray2d(w, h, geom.DirNone)
	queue := []geom.Vec2d{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, dir := range searchOrder {
			n := p.Add(dir.AsVec())
			if n == from || !m.IsPassable(cat, n) || !first.At(n).IsNone() {
				continue
			}
			step := dir
			if p != from {
				step = *first.At(p)
			}
			if goal(n) {
				return step, true
			}
			if occ := m.CharaAt(n); occ != chara.NoID && occ != who {
				continue
			}
			*first.At(n) = step
			queue = append(queue, n)
		}
	}
	return geom.DirNone, false
}
