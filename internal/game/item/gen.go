package item

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// Generator creates new item instances from catalog definitions.
type Generator struct {
	cat    *catalog.Catalog
	rules  *rules.Rules
	roller *dice.Roller
	logger *zap.Logger
}

// NewGenerator creates a Generator drawing from roller.
//
// Precondition: all arguments must be non-nil.
func NewGenerator(cat *catalog.Catalog, r *rules.Rules, roller *dice.Roller, logger *zap.Logger) *Generator {
	return &Generator{cat: cat, rules: r, roller: roller, logger: logger}
}

// FromID creates one item of definition id. Weapons and armor get a rolled
// quality, charged items a charge drawn from the definition's range, and items
// with image variations a random variation.
//
// Postcondition: Returns an item whose ObjID == id, or an error wrapping
// catalog.ErrUnknownObject.
func (g *Generator) FromID(id string) (Item, error) {
	def, err := g.cat.Items.Lookup(id)
	if err != nil {
		return Item{}, err
	}
	it := Item{ObjID: def.ID}
	if (def.Kind == catalog.ItemWeapon || def.Kind == catalog.ItemArmor) && g.rules.Item.QualityDice != "" {
		res, err := g.roller.RollExpr(g.rules.Item.QualityDice)
		if err != nil {
			return Item{}, fmt.Errorf("rolling quality for %q: %w", id, err)
		}
		it.Quality = res.Total()
	}
	if def.HasCharge() {
		n := dice.Range(g.roller.Source(), def.Charge[0], def.Charge[1])
		it.Charge = &n
	}
	if def.Variations > 1 {
		it.Attributes = append(it.Attributes, ImageVariation{N: g.roller.Source().Intn(def.Variations)})
	}
	return it, nil
}

// DungeonItem picks a definition suitable for a floor of a dungeon of the given
// kind and creates an item from it. The item kind is drawn from the dungeon's
// item_kind_probability table, then a definition of that kind is drawn by
// gen_weight among those whose gen_level does not exceed floor plus the rule
// table's margin.
//
// Postcondition: ok is false when no definition qualifies.
func (g *Generator) DungeonItem(floor int, kind rules.DungeonKind) (Item, bool) {
	var wantKind catalog.ItemKind
	if dg, ok := g.rules.Dungeon(kind); ok && len(dg.ItemKindProbability) > 0 {
		kinds, weights := dg.ItemKindProbability.Sorted()
		idx := dice.WeightedIndex(g.roller.Source(), weights)
		if idx < 0 {
			return Item{}, false
		}
		wantKind = catalog.ItemKind(kinds[idx])
	}

	var candidates []*catalog.ItemDef
	var weights []float64
	maxLevel := floor + g.rules.Item.GenLevelMargin
	for _, id := range g.cat.Items.IDs() {
		def := g.cat.Items.MustGet(id)
		if wantKind != "" && def.Kind != wantKind {
			continue
		}
		if def.GenWeight <= 0 || def.GenLevel > maxLevel {
			continue
		}
		candidates = append(candidates, def)
		weights = append(weights, def.GenWeight)
	}
	idx := dice.WeightedIndex(g.roller.Source(), weights)
	if idx < 0 {
		g.logger.Debug("no item definition qualifies",
			zap.Int("floor", floor),
			zap.String("dungeon_kind", string(kind)),
			zap.String("item_kind", string(wantKind)),
		)
		return Item{}, false
	}
	it, err := g.FromID(candidates[idx].ID)
	if err != nil {
		g.logger.Warn("generating dungeon item", zap.Error(err))
		return Item{}, false
	}
	return it, true
}
