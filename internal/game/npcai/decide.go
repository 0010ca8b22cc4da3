package npcai

import (
	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/action"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/geom"
)

// Decide returns what cid does this turn.
//
// Postcondition: never returns nil; a character that cannot be located waits.
func Decide(g *game.Game, cid chara.ID) action.Intent {
	s, ok := BuildSituation(g, cid)
	if !ok {
		return action.Wait{}
	}
	return Choose(s, g.Src)
}

// Choose maps a situation to an intent. An adjacent hostile is attacked in
// melee; a hostile within reach of a ranged weapon is shot; a visible hostile is
// approached; otherwise the character wanders, drawing from src.
//
// Precondition: s must not be nil.
func Choose(s *Situation, src dice.Source) action.Intent {
	if h, ok := s.Nearest(); ok {
		switch {
		case h.Dist <= 1:
			return action.Melee{Target: h.ID}
		case s.Reach >= h.Dist:
			return action.Shoot{Target: h.ID}
		}
		if dir, ok := approach(s, h.Pos); ok {
			return action.Move{Dir: dir}
		}
		return action.Wait{}
	}
	return wander(s, src)
}

// approach picks the step toward dst, falling back to the two neighbouring
// directions when the direct step is blocked.
func approach(s *Situation, dst geom.Vec2d) (geom.Direction, bool) {
	want := geom.DirectionTo(s.Pos, dst)
	i := dirIndex(want)
	if i < 0 {
		return geom.DirNone, false
	}
	n := len(geom.AllDirections)
	for _, off := range []int{0, 1, n - 1} {
		dir := geom.AllDirections[(i+off)%n]
		if s.IsOpen(dir) {
			return dir, true
		}
	}
	return geom.DirNone, false
}

// wander steps in a random open direction; one extra outcome stands still.
func wander(s *Situation, src dice.Source) action.Intent {
	i := src.Intn(len(s.Open) + 1)
	if i == len(s.Open) {
		return action.Wait{}
	}
	return action.Move{Dir: s.Open[i]}
}

func dirIndex(d geom.Direction) int {
	for i, a := range geom.AllDirections {
		if a == d {
			return i
		}
	}
	return -1
}
