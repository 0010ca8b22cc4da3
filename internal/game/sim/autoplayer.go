package sim

import (
	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/action"
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/effect"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/npcai"
)

// Step is what the player does on its turn: resolve an intent, or travel to
// another map.
type Step struct {
	Intent action.Intent
	// Travel is the destination map when Travels is set.
	Travel  gamemap.MapID
	Travels bool
}

// Controller chooses the player's step each turn.
type Controller interface {
	Next(g *game.Game) Step
}

// AutoPlayer plays the player character without input. It eats when hungry,
// drinks a healing potion when badly hurt, fights hostiles that are adjacent
// or within weapon reach, and otherwise heads for the nearest site entrance on
// a region map or the down stairs inside a site.
type AutoPlayer struct{}

// Next implements Controller.
func (AutoPlayer) Next(g *game.Game) Step {
	p := g.GD.Player()
	if p.SP < g.Rules.Chara.SPHungry {
		if loc, ok := findItem(g, func(d *catalog.ItemDef) bool { return d.Kind == catalog.ItemFood }); ok {
			return Step{Intent: action.Eat{Loc: loc}}
		}
	}
	if p.HP*3 < p.MaxHP {
		if loc, ok := findItem(g, heals); ok {
			return Step{Intent: action.Drink{Loc: loc}}
		}
	}

	s, ok := npcai.BuildSituation(g, chara.Player)
	if !ok {
		return Step{Intent: action.Wait{}}
	}
	if h, ok := s.Nearest(); ok && (h.Dist <= 1 || h.Dist <= s.Reach) {
		return Step{Intent: npcai.Choose(s, g.Src)}
	}

	mid := g.GD.CurrentMapID()
	m, ok := g.GD.CurrentMap()
	if !ok {
		return Step{Intent: action.Wait{}}
	}
	if dst, ok := travelFrom(mid, m.Tile(s.Pos).Special); ok {
		return Step{Travel: dst, Travels: true}
	}
	want := gamemap.StairsDown
	if mid.IsRegionMap() {
		want = gamemap.SiteEntrance
	}
	goal := func(q geom.Vec2d) bool { return m.Tile(q).Special.Kind == want }
	if dir, ok := FirstStep(m, g.Catalog, chara.Player, s.Pos, goal); ok {
		return Step{Intent: action.Move{Dir: dir}}
	}
	return Step{Intent: npcai.Choose(s, g.Src)}
}

// travelFrom returns the map a downward special on the current map leads to.
func travelFrom(mid gamemap.MapID, sp gamemap.Special) (gamemap.MapID, bool) {
	switch {
	case sp.Kind == gamemap.SiteEntrance && mid.IsRegionMap():
		return gamemap.SiteMapID(sp.Site, 0), true
	case sp.Kind == gamemap.StairsDown && !mid.IsRegionMap():
		return gamemap.SiteMapID(mid.Site, sp.Floor), true
	}
	return gamemap.MapID{}, false
}

func heals(d *catalog.ItemDef) bool {
	if d.Kind != catalog.ItemPotion || d.MedicalEffect == nil {
		return false
	}
	for _, k := range d.MedicalEffect.Kinds {
		if _, ok := k.(effect.Heal); ok {
			return true
		}
	}
	return false
}

// findItem returns the location of the first stack in the player's inventory
// whose definition satisfies match.
func findItem(g *game.Game, match func(*catalog.ItemDef) bool) (gamedata.ItemLocation, bool) {
	for i, st := range g.GD.Player().Items.Stacks() {
		if match(item.Snapshot(st.Item, g.Catalog).Def) {
			return gamedata.ItemLocation{List: gamedata.CharaList{Chara: chara.Player}, Index: i}, true
		}
	}
	return gamedata.ItemLocation{}, false
}
