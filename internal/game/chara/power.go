package chara

import (
	"math"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/effect"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/skill"
)

// PowerKind selects which attributes drive an attack.
type PowerKind int

const (
	MeleeAttack PowerKind = iota
	RangedAttack
)

// CalcPower returns the attack power and hit power of c for an attack of kind
// using skill sk. With L the skill level and B the skill base:
//
//	power = primary² × (L + B)^1.5
//	hit   = secondary × (L + B)
//
// Melee uses strength as primary and dexterity as secondary; ranged uses
// dexterity for both. The element does not affect either value.
//
// Postcondition: both values are >= 0 and depend only on the arguments.
func CalcPower(c *Chara, kind PowerKind, _ effect.Element, sk skill.Kind, skillBase float64) (power, hit float64) {
	primary, secondary := c.Attr.Str, c.Attr.Dex
	if kind == RangedAttack {
		primary = c.Attr.Dex
	}
	lv := float64(c.Skills.Get(sk)) + skillBase
	p := float64(primary)
	power = p * p * math.Pow(lv, 1.5)
	hit = float64(secondary) * lv
	return power, hit
}

// CalcDefence returns how much incoming attack power c absorbs: vitality scaled by
// the Defence skill, plus the effectiveness of body armor.
func CalcDefence(c *Chara, cat *catalog.Catalog, skillBase float64) float64 {
	d := float64(c.Attr.Vit) * (float64(c.Skills.Get(skill.Defence)) + skillBase)
	if armor, ok := c.Equip.Item(catalog.SlotBody, 0); ok {
		def := cat.Items.MustGet(armor.ObjID)
		d += float64(def.Defence+item.CalcEff(def, armor.Quality)) * skillBase
	}
	return d
}

// CalcEvasion returns the value an attacker's hit power is weighed against.
func CalcEvasion(c *Chara, skillBase float64) float64 {
	return float64(c.Attr.Dex) * (float64(c.Skills.Get(skill.Evasion)) + skillBase)
}
