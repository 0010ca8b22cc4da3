package item_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/dice/dicetest"
	"github.com/cory-johannsen/ruins/internal/game/gametest"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/skill"
)

func charge(n int) *int { return &n }

func TestItem_Equal(t *testing.T) {
	a := item.Item{ObjID: "wand.sleep", Charge: charge(2)}
	assert.True(t, a.Equal(item.Item{ObjID: "wand.sleep", Charge: charge(2)}))
	assert.False(t, a.Equal(item.Item{ObjID: "wand.sleep", Charge: charge(1)}))
	assert.False(t, a.Equal(item.Item{ObjID: "wand.sleep"}))
	assert.False(t, a.Equal(item.Item{ObjID: "wand.fire", Charge: charge(2)}))

	b := item.Item{ObjID: "book", Attributes: []item.Attribute{item.SkillLearning{Skill: skill.Bow}}}
	assert.True(t, b.Equal(item.Item{ObjID: "book", Attributes: []item.Attribute{item.SkillLearning{Skill: skill.Bow}}}))
	assert.False(t, b.Equal(item.Item{ObjID: "book", Attributes: []item.Attribute{item.SkillLearning{Skill: skill.Sword}}}))
}

func TestItem_CloneIsDeep(t *testing.T) {
	a := item.Item{ObjID: "wand.sleep", Charge: charge(3), Attributes: []item.Attribute{item.ImageVariation{N: 1}}}
	b := a.Clone()
	*b.Charge = 0
	b.Attributes[0] = item.ImageVariation{N: 2}
	n, _ := a.ChargeCount()
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, a.ImageVariation())
}

func TestItem_WithCharge(t *testing.T) {
	a := item.Item{ObjID: "wand.sleep", Charge: charge(3)}
	b := a.WithCharge(2)
	n, ok := b.ChargeCount()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	n, _ = a.ChargeCount()
	assert.Equal(t, 3, n)
}

func TestImageVariation_LastWins(t *testing.T) {
	it := item.Item{Attributes: []item.Attribute{item.ImageVariation{N: 1}, item.SkillLearning{}, item.ImageVariation{N: 4}}}
	assert.Equal(t, 4, it.ImageVariation())
	assert.Equal(t, 0, item.Item{}.ImageVariation())
}

func TestSnapshot(t *testing.T) {
	cat := gametest.Catalog()
	st := item.Snapshot(item.Item{ObjID: "sword.short", Quality: -1}, cat)
	assert.Equal(t, "sword.short", st.Def.ID)
	assert.Equal(t, 2, st.Eff)
	assert.Equal(t, 1.2, st.Weight)
	assert.False(t, st.Charged)

	st = item.Snapshot(item.Item{ObjID: "wand.fire", Charge: charge(0)}, cat)
	assert.True(t, st.Charged)
	assert.Equal(t, 0, st.Charge)
	assert.Panics(t, func() { item.Snapshot(item.Item{ObjID: "missing"}, cat) })
}

func TestCalcEff_NeverNegative(t *testing.T) {
	def := &catalog.ItemDef{Eff: 2}
	assert.Equal(t, 0, item.CalcEff(def, -5))
	assert.Equal(t, 5, item.CalcEff(def, 3))
}

func TestList_AppendMergesEqualItems(t *testing.T) {
	var l item.List
	l.Append(item.Item{ObjID: "potion.heal"}, 2)
	l.Append(item.Item{ObjID: "rock"}, 1)
	l.Append(item.Item{ObjID: "potion.heal"}, 3)
	l.Append(item.Item{ObjID: "rock"}, 0)

	require.Equal(t, 2, l.Len())
	s, ok := l.Get(0)
	require.True(t, ok)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 6, l.Total())
	assert.Equal(t, 5, l.CountObj("potion.heal"))
	idx, ok := l.Find("rock")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = l.Find("sword.short")
	assert.False(t, ok)
}

func TestList_RemoveDeletesEmptyStack(t *testing.T) {
	var l item.List
	l.Append(item.Item{ObjID: "potion.heal"}, 1)
	l.Append(item.Item{ObjID: "rock"}, 2)

	it, ok := l.RemoveAndGet(0, 1)
	require.True(t, ok)
	assert.Equal(t, "potion.heal", it.ObjID)
	assert.Equal(t, 1, l.Len())

	assert.False(t, l.Remove(0, 3), "cannot remove more than the stack holds")
	assert.False(t, l.Remove(5, 1))
	_, ok = l.RemoveAndGet(-1, 1)
	assert.False(t, ok)
	assert.Equal(t, 2, l.Total())
}

func TestList_Property_CountConserved(t *testing.T) {
	objs := []string{"rock", "potion.heal", "food.bread"}
	rapid.Check(t, func(rt *rapid.T) {
		var l item.List
		want := 0
		steps := rapid.IntRange(0, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "append") || l.Len() == 0 {
				n := rapid.IntRange(1, 5).Draw(rt, "n")
				l.Append(item.Item{ObjID: rapid.SampledFrom(objs).Draw(rt, "obj")}, n)
				want += n
				continue
			}
			idx := rapid.IntRange(0, l.Len()-1).Draw(rt, "idx")
			s, _ := l.Get(idx)
			n := rapid.IntRange(1, s.Count).Draw(rt, "n")
			require.True(rt, l.Remove(idx, n))
			want -= n
		}
		assert.Equal(rt, want, l.Total())
		for _, s := range l.Stacks() {
			assert.GreaterOrEqual(rt, s.Count, 1)
		}
	})
}

func TestGenerator_FromID(t *testing.T) {
	cat := gametest.Catalog()
	r := gametest.Rules()
	gen := gametest.ItemGen(cat, r, dicetest.Fixed{Int: 2})

	wand, err := gen.FromID("wand.sleep")
	require.NoError(t, err)
	n, ok := wand.ChargeCount()
	require.True(t, ok)
	assert.Equal(t, 4, n)

	sword, err := gen.FromID("sword.short")
	require.NoError(t, err)
	assert.Equal(t, 1, sword.Quality, "1d3-2 with a die showing 3")

	potion, err := gen.FromID("potion.heal")
	require.NoError(t, err)
	assert.Equal(t, 2, potion.ImageVariation())

	_, err = gen.FromID("missing")
	assert.ErrorIs(t, err, catalog.ErrUnknownObject)
}

func TestGenerator_DungeonItem_RespectsKindTable(t *testing.T) {
	cat := gametest.Catalog()
	r := gametest.Rules()
	gen := gametest.ItemGen(cat, r, dice.NewSeededSource(3))
	allowed := map[catalog.ItemKind]bool{catalog.ItemPotion: true, catalog.ItemFood: true, catalog.ItemWeapon: true}
	for i := 0; i < 200; i++ {
		it, ok := gen.DungeonItem(1, "ruin")
		require.True(t, ok)
		def := cat.Items.MustGet(it.ObjID)
		assert.True(t, allowed[def.Kind], "kind %q", def.Kind)
		assert.LessOrEqual(t, def.GenLevel, 1)
	}
}

func TestGenerator_DungeonItem_NoCandidate(t *testing.T) {
	cat := gametest.Catalog()
	r := gametest.Rules()
	dg := r.DungeonGen["ruin"]
	dg.ItemKindProbability = map[string]float64{"armor": 1}
	r.DungeonGen["ruin"] = dg
	r.Item.GenLevelMargin = -5
	_, ok := gametest.ItemGen(cat, r, dice.NewSeededSource(1)).DungeonItem(1, "ruin")
	assert.False(t, ok)
}
