package game

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/effect"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/present"
	"github.com/cory-johannsen/ruins/internal/game/status"
)

// AutoHit is the hit power of effects that cannot be evaded.
var AutoHit = math.Inf(1)

// DoEffect applies eff with the given power to every character it covers.
// cause is the acting character or chara.NoID for effects with no attacker.
// Melee and ranged kinds caused by a character roll to hit against each
// target's evasion unless hit is AutoHit.
//
// Postcondition: returns the number of characters affected.
func (g *Game) DoEffect(eff effect.Effect, cause chara.ID, target Target, power, hit float64) int {
	m, center, ok := g.resolveTarget(cause, target)
	if !ok {
		g.Logger.Debug("effect target not found", zap.Any("target", target))
		return 0
	}
	tiles := g.affectedTiles(m, eff, cause, center)
	g.queueEffect(eff, m, cause, center, tiles)

	var victims []chara.ID
	if tc, isChara := target.(TargetChara); isChara && eff.Shape == effect.OneTile {
		victims = []chara.ID{tc.ID}
	} else {
		for _, p := range tiles {
			if id := m.CharaAt(p); id != chara.NoID {
				victims = append(victims, id)
			}
		}
	}

	affected := 0
	for _, id := range victims {
		if g.applyKinds(eff, cause, id, power, hit) {
			affected++
		}
	}
	return affected
}

func (g *Game) resolveTarget(cause chara.ID, target Target) (*gamemap.Map, geom.Vec2d, bool) {
	switch t := target.(type) {
	case TargetChara:
		m, ok := g.CharaMap(t.ID)
		if !ok {
			return nil, geom.Vec2d{}, false
		}
		p, ok := m.CharaPos(t.ID)
		return m, p, ok
	case TargetTile:
		m, ok := g.CharaMap(cause)
		if !ok {
			m, ok = g.GD.CurrentMap()
		}
		if !ok || !m.InBounds(t.Pos) {
			return nil, geom.Vec2d{}, false
		}
		return m, t.Pos, true
	default:
		return nil, geom.Vec2d{}, false
	}
}

func (g *Game) affectedTiles(m *gamemap.Map, eff effect.Effect, cause chara.ID, center geom.Vec2d) []geom.Vec2d {
	switch eff.Shape {
	case effect.Line:
		from, ok := m.CharaPos(cause)
		if !ok {
			return []geom.Vec2d{center}
		}
		var out []geom.Vec2d
		for _, p := range geom.Line(from, center) {
			if eff.Range > 0 && from.MDistance(p) > eff.Range {
				break
			}
			if !m.InBounds(p) {
				break
			}
			out = append(out, p)
			if !m.IsTransparent(p) {
				break
			}
		}
		return out
	case effect.Circle:
		var out []geom.Vec2d
		for y := center.Y - eff.Size; y <= center.Y+eff.Size; y++ {
			for x := center.X - eff.Size; x <= center.X+eff.Size; x++ {
				if p := geom.V(x, y); m.InBounds(p) {
					out = append(out, p)
				}
			}
		}
		return out
	default:
		return []geom.Vec2d{center}
	}
}

func (g *Game) queueEffect(eff effect.Effect, m *gamemap.Map, cause chara.ID, center geom.Vec2d, tiles []geom.Vec2d) {
	switch eff.AnimKind {
	case effect.AnimChara:
		if eff.AnimImg != "" {
			g.Queue.Push(present.Anim{Img: eff.AnimImg, Tiles: tiles})
		}
	case effect.AnimShot:
		img := eff.AnimImgShot
		if img == "" {
			img = eff.AnimImg
		}
		anim := present.Anim{Img: img, Tiles: []geom.Vec2d{center}}
		if from, ok := m.CharaPos(cause); ok {
			anim.From = &from
		}
		g.Queue.Push(anim)
	}
	if eff.Sound != "" {
		pos := center
		g.Queue.Push(present.Sound{Name: eff.Sound, Pos: &pos})
	}
}

// applyKinds applies every kind of eff to id and reports whether id was affected.
func (g *Game) applyKinds(eff effect.Effect, cause, id chara.ID, power, hit float64) bool {
	affected := false
	for i, k := range eff.Kinds {
		c, ok := g.GD.Roster.Get(id)
		if !ok || c.Dead {
			break
		}
		p := power * eff.Adjust(i)
		switch k := k.(type) {
		case effect.Melee:
			affected = g.attack(cause, id, c, p, hit, DamageMelee) || affected
		case effect.Ranged:
			affected = g.attack(cause, id, c, p, hit, DamageRanged) || affected
		case effect.Explosion:
			g.DoDamage(id, g.calcDamage(c, p), DamageExplosion)
			affected = true
		case effect.Direct:
			g.DoDamage(id, max(int(p*g.Rules.Combat.DamageFactor), g.Rules.Combat.MinDamage), DamageDirect)
			affected = true
		case effect.Heal:
			g.heal(c, p)
			affected = true
		case effect.ApplyStatus:
			g.applyStatus(c, k.Status, p)
			affected = true
		case effect.RestoreSP:
			g.restoreSP(id, c, p)
			affected = true
		default:
			panic("game: unhandled effect kind")
		}
	}
	return affected
}

func (g *Game) attack(cause, id chara.ID, target *chara.Chara, power, hit float64, kind DamageKind) bool {
	if cause != chara.NoID && !math.IsInf(hit, 1) {
		ev := chara.CalcEvasion(target, g.Rules.Combat.SkillBase) * g.Rules.Combat.EvasionFactor
		chance := 1.0
		if hit+ev > 0 {
			chance = hit / (hit + ev)
		}
		if !g.Roller.Chance("hit", chance) {
			g.Log.Append("attack-evade", gamelog.A("chara", target.Name))
			return false
		}
	}
	g.DoDamage(id, g.calcDamage(target, power), kind)
	return true
}

// calcDamage converts attack power into hit points lost by target.
func (g *Game) calcDamage(target *chara.Chara, power float64) int {
	def := chara.CalcDefence(target, g.Catalog, g.Rules.Combat.SkillBase)
	d := power * g.Rules.Combat.DamageFactor
	if def > 0 {
		d /= def
	}
	return max(int(d), g.Rules.Combat.MinDamage)
}

func (g *Game) heal(c *chara.Chara, power float64) {
	n := max(int(power*g.Rules.Effect.HealFactor), 0)
	before := c.HP
	c.HP = min(c.HP+n, c.MaxHP)
	g.Log.Append("heal-hp", gamelog.A("chara", c.Name), gamelog.A("amount", strconv.Itoa(c.HP-before)))
}

func (g *Game) applyStatus(c *chara.Chara, k status.Kind, power float64) {
	switch k {
	case status.KindAsleep:
		turns := max(int(power*g.Rules.Effect.SleepTurnsFactor), 1)
		c.Status.Add(status.Asleep{TurnsLeft: turns})
	case status.KindPoisoned:
		turns := max(int(power*g.Rules.Effect.PoisonTurnsFactor), 1)
		dmg := max(int(power*g.Rules.Combat.DamageFactor/10), g.Rules.Combat.MinDamage, 1)
		c.Status.Add(status.Poisoned{TurnsLeft: turns, Damage: dmg})
	default:
		g.Logger.Warn("status cannot be applied by an effect", zap.Stringer("status", k))
		return
	}
	g.Log.Append(k.String()+"-start", gamelog.A("chara", c.Name))
}

func (g *Game) restoreSP(id chara.ID, c *chara.Chara, power float64) {
	dmg := c.AddSP(int(power*g.Rules.Effect.SPRestoreFactor), g.Rules)
	c.Update(g.Rules)
	if dmg > 0 {
		g.DoDamage(id, dmg, DamageStarve)
	}
}
