// Package item models item instances, stacked item lists and item generation.
package item

import (
	"slices"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/skill"
)

// Attribute is an instance-level property of an item. The set of variants is closed.
type Attribute interface {
	isAttribute()
}

// ImageVariation selects one of the definition's image variations.
type ImageVariation struct{ N int }

// SkillLearning marks a book that teaches a skill.
type SkillLearning struct{ Skill skill.Kind }

func (ImageVariation) isAttribute() {}
func (SkillLearning) isAttribute()  {}

// Item is one item instance. Items that compare Equal stack together.
type Item struct {
	ObjID      string
	Quality    int
	Charge     *int
	Title      string
	Material   string
	Attributes []Attribute
}

// Equal reports whether a and b are interchangeable for stacking.
func (a Item) Equal(b Item) bool {
	if a.ObjID != b.ObjID || a.Quality != b.Quality || a.Title != b.Title || a.Material != b.Material {
		return false
	}
	if (a.Charge == nil) != (b.Charge == nil) || (a.Charge != nil && *a.Charge != *b.Charge) {
		return false
	}
	return slices.Equal(a.Attributes, b.Attributes)
}

// Clone returns a deep copy of it.
func (a Item) Clone() Item {
	out := a
	if a.Charge != nil {
		c := *a.Charge
		out.Charge = &c
	}
	out.Attributes = slices.Clone(a.Attributes)
	return out
}

// ChargeCount returns the remaining charge and whether the item is charged at all.
func (a Item) ChargeCount() (int, bool) {
	if a.Charge == nil {
		return 0, false
	}
	return *a.Charge, true
}

// WithCharge returns a copy of a with its charge set to n.
func (a Item) WithCharge(n int) Item {
	out := a.Clone()
	out.Charge = &n
	return out
}

// ImageVariation returns the image variation index, 0 when unset. When several
// variation attributes are present the last one wins.
func (a Item) ImageVariation() int {
	v := 0
	for _, attr := range a.Attributes {
		if iv, ok := attr.(ImageVariation); ok {
			v = iv.N
		}
	}
	return v
}

// Stats is a snapshot of the values derived from an item and its definition.
// Resolvers take a snapshot before removing the item from its list.
type Stats struct {
	Def    *catalog.ItemDef
	Eff    int
	Weight float64
	Charge int
	// Charged is false for items that carry no charge count.
	Charged bool
}

// Snapshot computes the Stats of it. An unknown ObjID panics.
func Snapshot(it Item, cat *catalog.Catalog) Stats {
	def := cat.Items.MustGet(it.ObjID)
	charge, charged := it.ChargeCount()
	return Stats{
		Def:     def,
		Eff:     CalcEff(def, it.Quality),
		Weight:  def.Weight,
		Charge:  charge,
		Charged: charged,
	}
}

// CalcEff returns the effectiveness of an item: its base effectiveness shifted by
// its quality, never below zero.
func CalcEff(def *catalog.ItemDef, quality int) int {
	return max(def.Eff+quality, 0)
}
