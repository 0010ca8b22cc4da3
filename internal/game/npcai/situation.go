// Package npcai chooses what a non-player character does on its turn.
//
// A decision is made in two steps: BuildSituation snapshots what the character
// can perceive, then Choose maps the snapshot to an action intent.
package npcai

import (
	"sort"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// Sighting is a hostile character the deciding character can see.
type Sighting struct {
	ID   chara.ID
	Pos  geom.Vec2d
	Dist int
}

// Situation captures what one character perceives at decision time.
//
// Invariant: Hostiles is ordered by distance, then by id.
type Situation struct {
	Self chara.ID
	Pos  geom.Vec2d
	// Reach is the range of the equipped ranged weapon, 0 without one.
	Reach    int
	Hostiles []Sighting
	// Open lists the directions a step could be taken in.
	Open []geom.Direction
}

// BuildSituation snapshots the surroundings of cid on its map. Hostiles are the
// characters cid regards as hostile within the view radius and in line of sight.
//
// Postcondition: returns false when cid is missing or not placed on a map.
func BuildSituation(g *game.Game, cid chara.ID) (*Situation, bool) {
	c, ok := g.GD.Roster.Get(cid)
	if !ok || c.Dead {
		return nil, false
	}
	m, ok := g.CharaMap(cid)
	if !ok {
		return nil, false
	}
	pos, ok := m.CharaPos(cid)
	if !ok {
		return nil, false
	}
	s := &Situation{Self: cid, Pos: pos, Reach: rangedReach(g, c)}

	radius := g.Rules.Map.ViewRadius
	for _, other := range m.Charas() {
		if other == cid || g.GD.CharaRelation(g.Rules, cid, other) != rules.RelHostile {
			continue
		}
		op, _ := m.CharaPos(other)
		d := pos.MDistance(op)
		if d > radius || !InSight(m, pos, op) {
			continue
		}
		s.Hostiles = append(s.Hostiles, Sighting{ID: other, Pos: op, Dist: d})
	}
	sort.SliceStable(s.Hostiles, func(i, j int) bool {
		if s.Hostiles[i].Dist != s.Hostiles[j].Dist {
			return s.Hostiles[i].Dist < s.Hostiles[j].Dist
		}
		return s.Hostiles[i].ID < s.Hostiles[j].ID
	})

	for _, dir := range geom.AllDirections {
		p := pos.Add(dir.AsVec())
		if m.IsPassable(g.Catalog, p) && m.CharaAt(p) == chara.NoID {
			s.Open = append(s.Open, dir)
		}
	}
	return s, true
}

// Nearest returns the closest hostile.
func (s *Situation) Nearest() (Sighting, bool) {
	if len(s.Hostiles) == 0 {
		return Sighting{}, false
	}
	return s.Hostiles[0], true
}

// IsOpen reports whether a step in dir is free.
func (s *Situation) IsOpen(dir geom.Direction) bool {
	for _, d := range s.Open {
		if d == dir {
			return true
		}
	}
	return false
}

// InSight reports whether nothing opaque lies strictly between a and b.
func InSight(m *gamemap.Map, a, b geom.Vec2d) bool {
	line := geom.Line(a, b)
	for i, p := range line {
		if i == len(line)-1 {
			break
		}
		if !m.IsTransparent(p) {
			return false
		}
	}
	return true
}

func rangedReach(g *game.Game, c *chara.Chara) int {
	it, ok := c.Equip.Item(catalog.SlotRangedWeapon, 0)
	if !ok {
		return 0
	}
	def := item.Snapshot(it, g.Catalog).Def
	if def.Effect != nil && def.Effect.Range > 0 {
		return def.Effect.Range
	}
	return g.Rules.Effect.ThrowRange
}
