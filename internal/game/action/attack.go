package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/effect"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/skill"
)

// weapon is the resolved attack of an equipped weapon or bare hands.
type weapon struct {
	effect effect.Effect
	skill  skill.Kind
	eff    int
}

func bareHands() weapon {
	return weapon{effect: effect.BareHands(), skill: skill.BareHands, eff: 1}
}

// equippedWeapon returns the weapon c holds in slot.
func equippedWeapon(g *game.Game, c *chara.Chara, slot catalog.EquipSlot) (weapon, bool) {
	it, ok := c.Equip.Item(slot, 0)
	if !ok {
		return weapon{}, false
	}
	st := item.Snapshot(it, g.Catalog)
	return weapon{
		effect: weaponEffect(st.Def, slot),
		skill:  g.Catalog.WeaponSkill(st.Def),
		eff:    st.Eff,
	}, true
}

// weaponEffect returns the definition's effect, or a plain physical strike
// when the weapon declares none.
func weaponEffect(def *catalog.ItemDef, slot catalog.EquipSlot) effect.Effect {
	if def.Effect != nil {
		return *def.Effect
	}
	if slot == catalog.SlotRangedWeapon {
		return effect.Effect{
			Kinds:       []effect.Kind{effect.Ranged{Element: effect.Physical}},
			TargetMode:  effect.TargetEnemy,
			AnimKind:    effect.AnimShot,
			AnimImgShot: def.Img,
		}
	}
	return effect.Effect{
		Kinds:      []effect.Kind{effect.Melee{Element: effect.Physical}},
		TargetMode: effect.TargetEnemy,
		Range:      1,
	}
}

// MeleeAttack attacks target with cid's melee weapon, or bare hands when none
// is equipped, then trains the weapon skill.
//
// Postcondition: returns false when either character is missing.
func MeleeAttack(g *game.Game, cid, target chara.ID) bool {
	attacker, ok := g.GD.Roster.Get(cid)
	if !ok {
		return false
	}
	w, ok := equippedWeapon(g, attacker, catalog.SlotMeleeWeapon)
	if !ok {
		w = bareHands()
	}
	return attack(g, cid, target, w, chara.MeleeAttack)
}

// ShootTarget attacks target with cid's ranged weapon.
//
// Postcondition: returns false and does nothing when no ranged weapon is equipped.
func ShootTarget(g *game.Game, cid, target chara.ID) bool {
	attacker, ok := g.GD.Roster.Get(cid)
	if !ok {
		return false
	}
	w, ok := equippedWeapon(g, attacker, catalog.SlotRangedWeapon)
	if !ok {
		g.Logger.Debug("shoot without a ranged weapon", zap.Stringer("chara", cid))
		return false
	}
	return attack(g, cid, target, w, chara.RangedAttack)
}

func attack(g *game.Game, cid, target chara.ID, w weapon, kind chara.PowerKind) bool {
	attacker, _ := g.GD.Roster.Get(cid)
	t, ok := g.GD.Roster.Get(target)
	if !ok {
		return false
	}
	targetLevel := t.Level

	power, hit := chara.CalcPower(attacker, kind, effect.Physical, w.skill, g.Rules.Combat.SkillBase)
	g.DoEffect(w.effect, cid, game.TargetChara{ID: target}, power*float64(w.eff), hit)

	if a, ok := g.GD.Roster.Get(cid); ok && !a.Dead {
		a.AddAttackExp(w.skill, targetLevel, g.Rules)
	}
	return true
}
