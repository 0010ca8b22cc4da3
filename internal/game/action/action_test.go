package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/action"
	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice/dicetest"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gametest"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/present"
	"github.com/cory-johannsen/ruins/internal/game/skill"
	"github.com/cory-johannsen/ruins/internal/game/status"
)

func arena(t *testing.T, float float64) (*game.Game, *present.Queue) {
	t.Helper()
	return gametest.Arena(dicetest.Fixed{Float: float}, gametest.ArenaOptions{Player: geom.V(2, 2)})
}

func npc(g *game.Game, name, faction string, p geom.Vec2d) chara.ID {
	return gametest.AddNPC(g, gametest.Chara(name, faction, 6, g.Rules), p)
}

func give(g *game.Game, it item.Item, n int) gamedata.ItemLocation {
	p := g.GD.Player()
	p.Items.Append(it, n)
	i, _ := p.Items.Find(it.ObjID)
	return gamedata.ItemLocation{List: gamedata.CharaList{Chara: chara.Player}, Index: i}
}

func pos(t *testing.T, g *game.Game, id chara.ID) geom.Vec2d {
	t.Helper()
	p, ok := g.GD.CharaPos(id)
	require.True(t, ok)
	return p
}

func TestTryMove_ZeroDirection(t *testing.T) {
	g, q := arena(t, 0)
	assert.True(t, action.TryMove(g, chara.Player, geom.DirNone))
	assert.Equal(t, geom.V(2, 2), pos(t, g, chara.Player))
	assert.Empty(t, q.Drain())
}

func TestTryMove_IntoEmptyTile(t *testing.T) {
	g, q := arena(t, 0)
	require.True(t, action.TryMove(g, chara.Player, geom.DirE))
	assert.Equal(t, geom.V(3, 2), pos(t, g, chara.Player))
	assert.Equal(t, []present.Event{present.PlayerMove{Dir: geom.DirE}}, q.Drain())
}

func TestTryMove_Blocked(t *testing.T) {
	g, _ := gametest.Arena(dicetest.Fixed{}, gametest.ArenaOptions{Player: geom.V(0, 0)})
	m, _ := g.GD.CurrentMap()
	m.Tile(geom.V(1, 0)).Wall = "wall.stone"
	m.Tile(geom.V(0, 1)).Main = "tile.water"

	assert.False(t, action.TryMove(g, chara.Player, geom.DirW), "off the map")
	assert.False(t, action.TryMove(g, chara.Player, geom.DirE), "wall")
	assert.False(t, action.TryMove(g, chara.Player, geom.DirS), "water")
	assert.Equal(t, geom.V(0, 0), pos(t, g, chara.Player))
}

func TestTryMove_PlayerSwapsWithFriendly(t *testing.T) {
	g, q := arena(t, 0)
	v := npc(g, "villager", "citizen", geom.V(3, 2))

	require.True(t, action.TryMove(g, chara.Player, geom.DirE))

	assert.Equal(t, geom.V(3, 2), pos(t, g, chara.Player))
	assert.Equal(t, geom.V(2, 2), pos(t, g, v))
	m, _ := g.GD.CurrentMap()
	assert.Equal(t, chara.Player, m.CharaAt(geom.V(3, 2)))
	assert.Equal(t, v, m.CharaAt(geom.V(2, 2)))
	assert.Equal(t, []present.Event{present.PlayerMove{Dir: geom.DirE}}, q.Drain())
}

func TestTryMove_NPCNeverDisplacesPlayer(t *testing.T) {
	g, q := arena(t, 0)
	v := npc(g, "villager", "citizen", geom.V(3, 2))

	assert.True(t, action.TryMove(g, v, geom.DirW))

	assert.Equal(t, geom.V(2, 2), pos(t, g, chara.Player))
	assert.Equal(t, geom.V(3, 2), pos(t, g, v))
	assert.Empty(t, q.Drain())
}

func TestTryMove_HostileIsAttacked(t *testing.T) {
	g, _ := arena(t, 0)
	k := npc(g, "kobold", "monster", geom.V(3, 2))
	kc, _ := g.GD.Roster.Get(k)
	before := kc.HP

	assert.True(t, action.TryMove(g, chara.Player, geom.DirE))

	assert.Equal(t, geom.V(2, 2), pos(t, g, chara.Player))
	assert.Less(t, kc.HP, before)
}

func TestMeleeAttack_BareHands(t *testing.T) {
	g, q := arena(t, 0)
	k := npc(g, "kobold", "monster", geom.V(3, 2))
	kc, _ := g.GD.Roster.Get(k)

	require.True(t, action.MeleeAttack(g, chara.Player, k))

	// power = 10² × 8^1.5 ≈ 2262.7; damage = power × 0.5 / (6 × 8) ≈ 23.
	assert.Equal(t, 38-23, kc.HP)
	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, "!damage-blunt", events[0].(present.Anim).Img)
	assert.Equal(t, "punch", events[1].(present.Sound).Name)
	assert.Equal(t, 200, g.GD.Player().Skills.Exp(skill.BareHands))
}

func TestMeleeAttack_WeaponKillsAndTrainsSkill(t *testing.T) {
	g, q := arena(t, 0)
	g.GD.Player().Equip.Set(catalog.SlotMeleeWeapon, 0, item.Item{ObjID: "sword.short"})
	k := npc(g, "kobold", "monster", geom.V(3, 2))

	require.True(t, action.MeleeAttack(g, chara.Player, k))

	_, alive := g.GD.Roster.Get(k)
	assert.False(t, alive)
	assert.Equal(t, 1, g.Log.Count("killed-by-melee-attack"))
	assert.Positive(t, g.GD.Player().Skills.Exp(skill.Sword))
	assert.Zero(t, g.GD.Player().Skills.Exp(skill.BareHands))
	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, "slash", events[1].(present.Sound).Name)
}

func TestMeleeAttack_MissingTarget(t *testing.T) {
	g, _ := arena(t, 0)
	assert.False(t, action.MeleeAttack(g, chara.Player, 77))
	assert.Zero(t, g.GD.Player().Skills.Exp(skill.BareHands))
}

func TestShootTarget_RequiresRangedWeapon(t *testing.T) {
	g, q := arena(t, 0)
	k := npc(g, "kobold", "monster", geom.V(6, 2))
	kc, _ := g.GD.Roster.Get(k)
	before := kc.HP

	assert.False(t, action.ShootTarget(g, chara.Player, k))
	assert.Equal(t, before, kc.HP)
	assert.Empty(t, q.Drain())
	assert.Zero(t, g.Log.Len())
}

func TestShootTarget_WithBow(t *testing.T) {
	g, q := arena(t, 0)
	g.GD.Player().Equip.Set(catalog.SlotRangedWeapon, 0, item.Item{ObjID: "bow.short"})
	k := npc(g, "kobold", "monster", geom.V(6, 2))
	kc, _ := g.GD.Roster.Get(k)
	before := kc.HP

	assert.True(t, action.ShootTarget(g, chara.Player, k))
	assert.Less(t, kc.HP, before)
	events := q.Drain()
	require.NotEmpty(t, events)
	anim := events[0].(present.Anim)
	assert.Equal(t, "!arrow", anim.Img)
	require.NotNil(t, anim.From)
	assert.Equal(t, geom.V(2, 2), *anim.From)
	assert.Positive(t, g.GD.Player().Skills.Exp(skill.Bow))
}

func TestThrowItem_ByWeight(t *testing.T) {
	g, _ := arena(t, 0.999)
	k := npc(g, "kobold", "monster", geom.V(5, 2))
	kc, _ := g.GD.Roster.Get(k)
	before := kc.HP
	loc := give(g, item.Item{ObjID: "rock"}, 3)

	require.True(t, action.ThrowItem(g, loc, chara.Player, game.TargetChara{ID: k}))

	assert.Equal(t, 2, g.GD.Player().Items.CountObj("rock"))
	assert.Equal(t, before-1, kc.HP, "thrown items never miss")
	assert.Equal(t, 1, g.Log.Count("throw-item"))
	assert.Equal(t, "Rock", g.Log.Entries()[0].Arg("item"))
	assert.Positive(t, g.GD.Player().Skills.Exp(skill.Throwing))
}

func TestThrowItem_AtEmptyTile(t *testing.T) {
	g, _ := arena(t, 0)
	loc := give(g, item.Item{ObjID: "dagger.throwing"}, 1)

	require.True(t, action.ThrowItem(g, loc, chara.Player, game.TargetTile{Pos: geom.V(7, 7)}))

	assert.Zero(t, g.GD.Player().Items.Len())
	// A tile target counts as a level 1 target: exp = 100 × 2 / 1.
	assert.Equal(t, 200, g.GD.Player().Skills.Exp(skill.Throwing))
}

func TestThrowItem_ThrowEffectDamage(t *testing.T) {
	for _, tc := range []struct {
		name     string
		str      int
		throwing int
		wantHP   int
	}{
		// power = eff 2 × str 10 × dex 10 × (0 + 8) = 1600; damage = 1600 × 0.5 / (6 × 8) ≈ 16.
		{name: "untrained", str: 10, throwing: 0, wantHP: 38 - 16},
		// power = 2 × 12 × 10 × (2 + 8) = 2400; damage = 2400 × 0.5 / 48 = 25.
		{name: "strong and trained", str: 12, throwing: 2, wantHP: 38 - 25},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := arena(t, 0)
			p := g.GD.Player()
			p.BaseAttr.Str = tc.str
			p.Update(g.Rules)
			p.Skills.Set(skill.Throwing, tc.throwing)
			k := npc(g, "kobold", "monster", geom.V(5, 2))
			kc, _ := g.GD.Roster.Get(k)
			loc := give(g, item.Item{ObjID: "dagger.throwing"}, 1)

			require.True(t, action.ThrowItem(g, loc, chara.Player, game.TargetChara{ID: k}))

			assert.Equal(t, tc.wantHP, kc.HP)
			assert.Zero(t, p.Items.Len())
			assert.Equal(t, 1, g.Log.Count("throw-item"))
			assert.Greater(t, p.Skills.Exp(skill.Throwing), 0)
		})
	}
}

func TestThrowItem_MissingItem(t *testing.T) {
	g, _ := arena(t, 0)
	loc := gamedata.ItemLocation{List: gamedata.CharaList{Chara: chara.Player}, Index: 0}
	assert.False(t, action.ThrowItem(g, loc, chara.Player, game.TargetTile{Pos: geom.V(3, 3)}))
	assert.Zero(t, g.Log.Len())
}

func TestDrinkItem_Heals(t *testing.T) {
	g, _ := arena(t, 0)
	p := g.GD.Player()
	p.HP = 20
	loc := give(g, item.Item{ObjID: "potion.heal"}, 2)

	require.True(t, action.DrinkItem(g, loc, chara.Player))

	assert.Equal(t, 30, p.HP)
	assert.Equal(t, 1, p.Items.CountObj("potion.heal"))
	assert.Equal(t, 1, g.Log.Count("drink-item"))
}

func TestDrinkItem_SleepingDraught(t *testing.T) {
	g, _ := arena(t, 0)
	loc := give(g, item.Item{ObjID: "potion.sleep"}, 1)

	require.True(t, action.DrinkItem(g, loc, chara.Player))

	assert.True(t, g.GD.Player().Status.Has(status.KindAsleep))
	assert.False(t, g.Preturn(chara.Player))
}

func TestEatItem_RestoresSatiety(t *testing.T) {
	g, _ := arena(t, 0)
	p := g.GD.Player()
	p.SP = 1000
	p.Update(g.Rules)
	require.True(t, p.Status.Has(status.KindHungry))
	loc := give(g, item.Item{ObjID: "food.bread"}, 1)

	require.True(t, action.EatItem(g, loc, chara.Player))

	assert.Equal(t, 4000, p.SP)
	assert.False(t, p.Status.Has(status.KindHungry))
	assert.Zero(t, p.Items.Len())
	assert.Equal(t, 1, g.Log.Count("eat-item"))
}

func TestEatItem_RottenFoodWhileStarving(t *testing.T) {
	g, _ := arena(t, 0)
	p := g.GD.Player()
	p.SP = -1000
	before := p.HP
	loc := give(g, item.Item{ObjID: "food.rotten"}, 1)

	require.True(t, action.EatItem(g, loc, chara.Player))

	assert.Equal(t, -2000, p.SP)
	assert.Equal(t, before-20, p.HP)
	assert.True(t, p.Status.Has(status.KindPoisoned))
	assert.Equal(t, 1, g.Log.Count("damaged-chara"))
}

func TestReleaseItem_SpendsOneCharge(t *testing.T) {
	g, _ := arena(t, 0)
	k := npc(g, "kobold", "monster", geom.V(5, 2))
	loc := give(g, item.Item{ObjID: "wand.sleep"}.WithCharge(2), 1)

	require.True(t, action.ReleaseItem(g, loc, chara.Player, game.TargetChara{ID: k}))

	p := g.GD.Player()
	assert.Equal(t, 1, p.Items.Total())
	s, ok := p.Items.Get(0)
	require.True(t, ok)
	charge, _ := s.Item.ChargeCount()
	assert.Equal(t, 1, charge)
	kc, _ := g.GD.Roster.Get(k)
	assert.True(t, kc.Status.Has(status.KindAsleep))
}

func TestReleaseItem_NoChargeIsTransparent(t *testing.T) {
	g, q := arena(t, 0)
	k := npc(g, "kobold", "monster", geom.V(5, 2))
	empty := item.Item{ObjID: "wand.sleep"}.WithCharge(0)
	loc := give(g, empty, 2)
	before := g.GD.Player().Items.Stacks()

	assert.False(t, action.ReleaseItem(g, loc, chara.Player, game.TargetChara{ID: k}))

	assert.Equal(t, before, g.GD.Player().Items.Stacks())
	assert.Zero(t, g.Log.Len())
	assert.Empty(t, q.Drain())
}

func TestReleaseItem_NonMagicalIsTransparent(t *testing.T) {
	g, _ := arena(t, 0)
	rock := item.Item{ObjID: "rock"}.WithCharge(3)
	loc := give(g, rock, 1)

	assert.False(t, action.ReleaseItem(g, loc, chara.Player, game.TargetTile{Pos: geom.V(4, 4)}))
	s, _ := g.GD.Player().Items.Get(0)
	assert.True(t, s.Item.Equal(rock))
}

func TestResolve(t *testing.T) {
	g, _ := arena(t, 0)
	assert.True(t, action.Resolve(g, chara.Player, action.Wait{}))
	assert.True(t, action.Resolve(g, chara.Player, action.Move{Dir: geom.DirS}))
	assert.Equal(t, geom.V(2, 3), pos(t, g, chara.Player))
	assert.False(t, action.Resolve(g, chara.Player, action.Shoot{Target: 42}))
	assert.False(t, action.Resolve(g, chara.Player, action.Drink{Loc: gamedata.ItemLocation{List: gamedata.CharaList{Chara: chara.Player}}}))
}

func TestProperty_ConsumingRemovesExactlyOne(t *testing.T) {
	ids := []string{"rock", "food.bread", "potion.heal", "dagger.throwing", "wand.sleep"}
	rapid.Check(t, func(rt *rapid.T) {
		g, _ := gametest.Arena(dicetest.Fixed{}, gametest.ArenaOptions{Player: geom.V(2, 2)})
		id := rapid.SampledFrom(ids).Draw(rt, "item")
		n := rapid.IntRange(1, 5).Draw(rt, "count")
		it := item.Item{ObjID: id}
		if id == "wand.sleep" {
			it = it.WithCharge(rapid.IntRange(0, 3).Draw(rt, "charge"))
		}
		loc := give(g, it, n)
		p := g.GD.Player()

		var ok bool
		want := n - 1
		switch rapid.IntRange(0, 3).Draw(rt, "action") {
		case 0:
			ok = action.ThrowItem(g, loc, chara.Player, game.TargetTile{Pos: geom.V(5, 5)})
		case 1:
			ok = action.DrinkItem(g, loc, chara.Player)
		case 2:
			ok = action.EatItem(g, loc, chara.Player)
		case 3:
			ok = action.ReleaseItem(g, loc, chara.Player, game.TargetTile{Pos: geom.V(5, 5)})
			want = n
		}
		if !ok {
			want = n
		}
		if got := p.Items.CountObj(id); got != want {
			rt.Fatalf("count of %s after action = %d, want %d", id, got, want)
		}
	})
}
