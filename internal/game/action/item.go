package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/effect"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/skill"
)

// takeOne snapshots the item at loc and removes one unit of it.
func takeOne(g *game.Game, loc gamedata.ItemLocation) (item.Stats, bool) {
	s, err := g.GD.Item(loc)
	if err != nil {
		g.Logger.Debug("item not found", zap.Any("location", loc), zap.Error(err))
		return item.Stats{}, false
	}
	st := item.Snapshot(s.Item, g.Catalog)
	if _, err := g.GD.RemoveItemAndGet(loc, 1); err != nil {
		return item.Stats{}, false
	}
	return st, true
}

// throwEffect is the effect of throwing an item: its own throw effect, or a
// physical ranged hit for anything else.
func throwEffect(g *game.Game, def *catalog.ItemDef) effect.Effect {
	if def.ThrowEffect != nil {
		return *def.ThrowEffect
	}
	return effect.Effect{
		Kinds:       []effect.Kind{effect.Ranged{Element: effect.Physical}},
		TargetMode:  effect.TargetEnemy,
		Range:       g.Rules.Effect.ThrowRange,
		AnimKind:    effect.AnimShot,
		AnimImgShot: def.Img,
		Sound:       "throw",
	}
}

// ThrowItem throws one item from loc at target. Items with a throw effect hit
// by the thrower's strength, dexterity and Throwing skill; anything else hits
// by its weight. The thrown item is used up.
//
// Postcondition: returns false and changes nothing when cid or the item is missing.
func ThrowItem(g *game.Game, loc gamedata.ItemLocation, cid chara.ID, target game.Target) bool {
	c, ok := g.GD.Roster.Get(cid)
	if !ok {
		return false
	}
	st, ok := takeOne(g, loc)
	if !ok {
		return false
	}
	eff := throwEffect(g, st.Def)

	var power float64
	if st.Def.ThrowEffect != nil {
		power = float64(st.Eff) * float64(c.Attr.Str) * float64(c.Attr.Dex) *
			(float64(c.Skills.Get(skill.Throwing)) + g.Rules.Combat.SkillBase)
	} else {
		power = st.Weight * g.Rules.Effect.ThrowWeightToEffFactor * float64(c.Attr.Str)
	}
	g.Log.Append("throw-item", gamelog.A("chara", c.Name), gamelog.A("item", st.Def.Name))

	targetLevel := 1
	if tc, ok := target.(game.TargetChara); ok {
		if t, ok := g.GD.Roster.Get(tc.ID); ok {
			targetLevel = t.Level
		}
	}
	g.DoEffect(eff, cid, target, power, game.AutoHit)
	if !c.Dead {
		c.AddAttackExp(skill.Throwing, targetLevel, g.Rules)
	}
	return true
}

// DrinkItem drinks one item from loc and applies its medical effect to cid.
//
// Postcondition: returns false and changes nothing when cid or the item is missing.
func DrinkItem(g *game.Game, loc gamedata.ItemLocation, cid chara.ID) bool {
	c, ok := g.GD.Roster.Get(cid)
	if !ok {
		return false
	}
	st, ok := takeOne(g, loc)
	if !ok {
		return false
	}
	g.Log.Append("drink-item", gamelog.A("chara", c.Name), gamelog.A("item", st.Def.Name))
	applyMedicalEffect(g, cid, st.Def.MedicalEffect, float64(st.Eff)*g.Rules.Effect.ItemDrinkPowerFactor)
	return true
}

// EatItem eats one item from loc: satiety grows by its nutrition, then its
// medical effect applies to cid. Food that leaves cid starving deals
// starvation damage.
//
// Postcondition: returns false and changes nothing when cid or the item is missing.
func EatItem(g *game.Game, loc gamedata.ItemLocation, cid chara.ID) bool {
	c, ok := g.GD.Roster.Get(cid)
	if !ok {
		return false
	}
	st, ok := takeOne(g, loc)
	if !ok {
		return false
	}
	g.Log.Append("eat-item", gamelog.A("chara", c.Name), gamelog.A("item", st.Def.Name))

	dmg := c.AddSP(int(float64(st.Def.Nutrition)*g.Rules.Chara.SPNutritionFactor), g.Rules)
	c.Update(g.Rules)
	if dmg > 0 {
		g.DoDamage(cid, dmg, game.DamageStarve)
	}
	applyMedicalEffect(g, cid, st.Def.MedicalEffect, float64(st.Eff)*g.Rules.Effect.ItemEatPowerFactor)
	return true
}

func applyMedicalEffect(g *game.Game, cid chara.ID, eff *effect.Effect, power float64) {
	if eff == nil {
		return
	}
	g.DoEffect(*eff, chara.NoID, game.TargetChara{ID: cid}, power, game.AutoHit)
}

// ReleaseItem spends one charge of the device at loc on target. The device
// stays in its list with one charge fewer.
//
// Postcondition: returns false and changes nothing when the item is missing,
// has no charge left or has no magical effect.
func ReleaseItem(g *game.Game, loc gamedata.ItemLocation, cid chara.ID, target game.Target) bool {
	c, ok := g.GD.Roster.Get(cid)
	if !ok {
		return false
	}
	s, err := g.GD.Item(loc)
	if err != nil {
		return false
	}
	st := item.Snapshot(s.Item, g.Catalog)
	if !st.Charged || st.Charge < 1 || st.Def.MagicalEffect == nil {
		g.Logger.Debug("release abandoned",
			zap.String("item", st.Def.ID),
			zap.Int("charge", st.Charge),
			zap.Bool("magical", st.Def.MagicalEffect != nil),
		)
		return false
	}
	it, err := g.GD.RemoveItemAndGet(loc, 1)
	if err != nil {
		return false
	}
	if err := g.GD.AppendItem(loc.List, it.WithCharge(st.Charge-1), 1); err != nil {
		g.Logger.Error("returning released item", zap.Any("location", loc), zap.Error(err))
		return false
	}

	lv := float64(c.Skills.Get(skill.MagicDevice))
	power := (lv/10 + 1) * float64(st.Eff) * g.Rules.Magic.MagicDeviceBasePower
	g.Log.Append("release-item", gamelog.A("chara", c.Name), gamelog.A("item", st.Def.Name))
	g.DoEffect(*st.Def.MagicalEffect, cid, target, power, game.AutoHit)
	return true
}
