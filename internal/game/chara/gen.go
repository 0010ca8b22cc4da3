package chara

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// Generator creates characters from catalog templates.
type Generator struct {
	cat    *catalog.Catalog
	rules  *rules.Rules
	roller *dice.Roller
	items  *item.Generator
	logger *zap.Logger
}

// NewGenerator creates a Generator.
//
// Precondition: all arguments must be non-nil.
func NewGenerator(cat *catalog.Catalog, r *rules.Rules, roller *dice.Roller, items *item.Generator, logger *zap.Logger) *Generator {
	return &Generator{cat: cat, rules: r, roller: roller, items: items, logger: logger}
}

// FromTemplate builds a character from def at the given level: rolled hit points,
// template skills, equipped weapons and carried items. Satiety starts at the rule
// table's default and HP at maximum.
//
// Precondition: def must have passed Validate and CheckReferences.
// Postcondition: HP == MaxHP >= 1.
func (g *Generator) FromTemplate(def *catalog.CharaDef, level int) (*Chara, error) {
	c := &Chara{
		Name:       def.Name,
		TemplateID: def.ID,
		Faction:    def.Faction,
		Level:      max(level, 1),
		BaseAttr:   def.BaseAttr,
		SP:         g.rules.Chara.SPDefault,
	}
	if def.HPDice != "" {
		res, err := g.roller.RollExpr(def.HPDice)
		if err != nil {
			return nil, fmt.Errorf("rolling hp for %q: %w", def.ID, err)
		}
		c.BaseHP = max(res.Total(), 1) * c.Level
	}
	for sk, lv := range def.Skills {
		c.Skills.Set(sk, max(lv+c.Level-def.Level, 0))
	}
	if def.Weapon != "" {
		it, err := g.items.FromID(def.Weapon)
		if err != nil {
			return nil, err
		}
		c.Equip.Set(catalog.SlotMeleeWeapon, 0, it)
	}
	if def.Ranged != "" {
		it, err := g.items.FromID(def.Ranged)
		if err != nil {
			return nil, err
		}
		c.Equip.Set(catalog.SlotRangedWeapon, 0, it)
	}
	for _, id := range def.Items {
		it, err := g.items.FromID(id)
		if err != nil {
			return nil, err
		}
		c.Items.Append(it, 1)
	}
	c.MaxSP = g.rules.Chara.SPMax
	c.Update(g.rules)
	c.HP = c.MaxHP
	return c, nil
}

// NewNPC creates a character suitable for a floor of a dungeon of the given
// kind. Templates are drawn by gen_weight scaled by the dungeon's race weight,
// among those whose gen_level does not exceed floorLevel. The NPC's level grows
// with depth.
//
// Postcondition: ok is false when no template qualifies.
func (g *Generator) NewNPC(kind rules.DungeonKind, floorLevel int) (*Chara, bool) {
	dg, hasKind := g.rules.Dungeon(kind)
	var candidates []*catalog.CharaDef
	var weights []float64
	for _, id := range g.cat.Charas.IDs() {
		def := g.cat.Charas.MustGet(id)
		if def.GenWeight <= 0 || def.GenLevel > floorLevel {
			continue
		}
		w := def.GenWeight
		if hasKind && len(dg.NPCRaceProbability) > 0 {
			w *= dg.NPCRaceProbability[def.Race]
		}
		candidates = append(candidates, def)
		weights = append(weights, w)
	}
	idx := dice.WeightedIndex(g.roller.Source(), weights)
	if idx < 0 {
		g.logger.Warn("no npc template qualifies",
			zap.String("dungeon_kind", string(kind)),
			zap.Int("floor_level", floorLevel),
		)
		return nil, false
	}
	def := candidates[idx]
	c, err := g.FromTemplate(def, def.Level+(floorLevel-1)/2)
	if err != nil {
		g.logger.Warn("creating npc", zap.String("template", def.ID), zap.Error(err))
		return nil, false
	}
	return c, true
}
