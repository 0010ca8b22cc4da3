package game

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/game/status"
)

// DamageKind records what caused damage.
type DamageKind int

const (
	DamageMelee DamageKind = iota
	DamageRanged
	DamageExplosion
	DamageDirect
	DamagePoison
	DamageStarve
)

func (k DamageKind) String() string {
	switch k {
	case DamageMelee:
		return "melee-attack"
	case DamageRanged:
		return "ranged-attack"
	case DamageExplosion:
		return "explosion"
	case DamageDirect:
		return "direct"
	case DamagePoison:
		return "poison"
	case DamageStarve:
		return "starve"
	default:
		return "unknown"
	}
}

// DoDamage takes n hit points from cid. A character reduced to 0 HP dies: NPCs
// are removed from their map and the roster; the player is marked Dead.
//
// Postcondition: returns the remaining HP, never negative. Unknown or dead
// characters are ignored and 0 is returned.
func (g *Game) DoDamage(cid chara.ID, n int, kind DamageKind) int {
	c, ok := g.GD.Roster.Get(cid)
	if !ok || c.Dead {
		return 0
	}
	n = max(n, 0)
	c.HP = max(c.HP-n, 0)
	g.Log.Append("damaged-chara",
		gamelog.A("chara", c.Name),
		gamelog.A("damage", strconv.Itoa(n)),
		gamelog.A("kind", kind.String()),
	)
	if c.HP > 0 {
		return c.HP
	}

	g.Log.Append("killed-by-"+kind.String(), gamelog.A("chara", c.Name))
	g.Logger.Debug("character died", zap.Stringer("id", cid), zap.Stringer("cause", kind))
	c.Dead = true
	if !cid.IsPlayer() {
		g.GD.RemoveChara(cid)
	}
	return 0
}

// Preturn runs the start-of-turn bookkeeping for cid: poison damage, status
// advance and expiry, then the can-act check.
//
// Postcondition: statuses that expired this turn are gone before CanAct runs;
// returns false when cid is missing, dead or unable to act.
func (g *Game) Preturn(cid chara.ID) bool {
	c, ok := g.GD.Roster.Get(cid)
	if !ok || c.Dead {
		return false
	}
	if s, ok := c.Status.Get(status.KindPoisoned); ok {
		if g.DoDamage(cid, s.(status.Poisoned).Damage, DamagePoison) == 0 {
			return false
		}
	}
	for _, s := range c.Status.AdvanceTurn() {
		g.Log.Append(s.Kind().String()+"-end", gamelog.A("chara", c.Name))
	}
	return status.CanAct(&c.Status, c.Name, g.Log)
}

// EndTurn consumes satiety for cid's turn and applies starvation damage.
func (g *Game) EndTurn(cid chara.ID) {
	c, ok := g.GD.Roster.Get(cid)
	if !ok || c.Dead {
		return
	}
	dmg := c.AddSP(-g.Rules.Chara.SPPerTurn, g.Rules)
	c.Update(g.Rules)
	if dmg > 0 {
		g.DoDamage(cid, dmg, DamageStarve)
	}
}
