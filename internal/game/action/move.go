package action

import (
	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/present"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// TryMove steps cid one tile in dir. A non-hostile occupant swaps places with
// the mover, except that no one displaces the player; a hostile occupant is
// attacked instead.
//
// Postcondition: returns true for the zero direction and whenever the
// destination was passable, whether or not cid ended up moving; returns false
// when the destination is off the map or impassable.
func TryMove(g *game.Game, cid chara.ID, dir geom.Direction) bool {
	if dir.IsNone() {
		return true
	}
	m, ok := g.CharaMap(cid)
	if !ok {
		return false
	}
	pos, ok := m.CharaPos(cid)
	if !ok {
		return false
	}
	dest := pos.Add(dir.AsVec())
	if !m.IsPassable(g.Catalog, dest) {
		return false
	}

	other := m.CharaAt(dest)
	if other == chara.NoID {
		m.MoveChara(cid, dir)
		pushPlayerMove(g, cid, dir)
		return true
	}

	switch g.GD.CharaRelation(g.Rules, cid, other) {
	case rules.RelHostile:
		MeleeAttack(g, cid, other)
	default:
		if !other.IsPlayer() {
			m.SwapChara(pos, dest)
		}
		pushPlayerMove(g, cid, dir)
	}
	return true
}

func pushPlayerMove(g *game.Game, cid chara.ID, dir geom.Direction) {
	if cid.IsPlayer() {
		g.Queue.Push(present.PlayerMove{Dir: dir})
	}
}
