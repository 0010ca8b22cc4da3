package npcai_test

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
	"github.com/cory-johannsen/ruins/internal/game/gametest"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/npcai"
)

func arena(t *testing.T, src dicetest.Fixed) *game.Game {
	t.Helper()
	g, _ := gametest.Arena(src, gametest.ArenaOptions{Player: geom.V(2, 2)})
	return g
}

func npc(g *game.Game, faction string, p geom.Vec2d) chara.ID {
	return gametest.AddNPC(g, gametest.Chara("npc", faction, 6, g.Rules), p)
}

func wall(g *game.Game, p geom.Vec2d) {
	m, _ := g.GD.CurrentMap()
	m.Tile(p).Wall = "wall.stone"
}

func TestDecide_AdjacentHostileIsMeleed(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(3, 2))
	assert.Equal(t, action.Melee{Target: chara.Player}, npcai.Decide(g, k))
}

func TestDecide_ArcherShootsWithinReach(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(6, 2))
	c, _ := g.GD.Roster.Get(k)
	c.Equip.Set(catalog.SlotRangedWeapon, 0, item.Item{ObjID: "bow.short"})

	s, ok := npcai.BuildSituation(g, k)
	require.True(t, ok)
	assert.Equal(t, 6, s.Reach)
	assert.Equal(t, action.Shoot{Target: chara.Player}, npcai.Decide(g, k))
}

func TestDecide_ArcherMeleesWhenAdjacent(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(3, 3))
	c, _ := g.GD.Roster.Get(k)
	c.Equip.Set(catalog.SlotRangedWeapon, 0, item.Item{ObjID: "bow.short"})
	assert.Equal(t, action.Melee{Target: chara.Player}, npcai.Decide(g, k))
}

func TestDecide_ApproachesVisibleHostile(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(6, 2))
	assert.Equal(t, action.Move{Dir: geom.DirW}, npcai.Decide(g, k))
}

func TestDecide_ApproachSidestepsBlockedTile(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(6, 6))
	npc(g, "monster", geom.V(5, 5))
	assert.Equal(t, action.Move{Dir: geom.DirN}, npcai.Decide(g, k))
}

func TestDecide_WallBlocksSight(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(6, 2))
	wall(g, geom.V(4, 2))

	s, ok := npcai.BuildSituation(g, k)
	require.True(t, ok)
	assert.Empty(t, s.Hostiles)
	// Int 0 picks the first open direction.
	assert.Equal(t, action.Move{Dir: geom.DirN}, npcai.Decide(g, k))
}

func TestDecide_HostileBeyondViewRadiusIsIgnored(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	k := npc(g, "monster", geom.V(9, 9))
	s, ok := npcai.BuildSituation(g, k)
	require.True(t, ok)
	assert.Empty(t, s.Hostiles)
}

func TestDecide_FriendlyWandersOrWaits(t *testing.T) {
	g := arena(t, dicetest.Fixed{Int: 100})
	v := npc(g, "citizen", geom.V(3, 2))
	assert.Equal(t, action.Wait{}, npcai.Decide(g, v))
}

func TestDecide_MissingCharaWaits(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	assert.Equal(t, action.Wait{}, npcai.Decide(g, chara.ID(999)))
}

func TestBuildSituation_HostilesOrderedByDistance(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	far := npc(g, "monster", geom.V(5, 2))
	near := npc(g, "monster", geom.V(2, 4))
	tie := npc(g, "monster", geom.V(4, 4))

	s, ok := npcai.BuildSituation(g, chara.Player)
	require.True(t, ok)
	require.Len(t, s.Hostiles, 3)
	assert.Equal(t, []chara.ID{near, tie, far}, []chara.ID{s.Hostiles[0].ID, s.Hostiles[1].ID, s.Hostiles[2].ID})
	assert.Equal(t, 2, s.Hostiles[0].Dist)
}

func TestBuildSituation_OpenExcludesWallsAndCharas(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	wall(g, geom.V(2, 1))
	npc(g, "citizen", geom.V(3, 2))

	s, ok := npcai.BuildSituation(g, chara.Player)
	require.True(t, ok)
	assert.Len(t, s.Open, 6)
	assert.False(t, s.IsOpen(geom.DirN))
	assert.False(t, s.IsOpen(geom.DirE))
	assert.True(t, s.IsOpen(geom.DirS))
}

func TestInSight_Range(t *testing.T) {
	g := arena(t, dicetest.Fixed{})
	wall(g, geom.V(4, 4))
	m, _ := g.GD.CurrentMap()

	assert.True(t, npcai.InSight(m, geom.V(2, 2), geom.V(6, 2)))
	assert.False(t, npcai.InSight(m, geom.V(2, 2), geom.V(6, 6)))
	assert.True(t, npcai.InSight(m, geom.V(2, 2), geom.V(4, 4)), "the opaque endpoint itself is visible")
}

func TestProperty_ChooseStaysWithinSituation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var open []geom.Direction
		for _, d := range geom.AllDirections {
			if rapid.Bool().Draw(rt, "open") {
				open = append(open, d)
			}
		}
		s := &npcai.Situation{
			Self:  chara.ID(2),
			Pos:   geom.V(10, 10),
			Reach: rapid.IntRange(0, 6).Draw(rt, "reach"),
			Open:  open,
		}
		if rapid.Bool().Draw(rt, "hostile") {
			p := geom.V(rapid.IntRange(4, 16).Draw(rt, "x"), rapid.IntRange(4, 16).Draw(rt, "y"))
			if p != s.Pos {
				s.Hostiles = []npcai.Sighting{{ID: chara.Player, Pos: p, Dist: s.Pos.MDistance(p)}}
			}
		}
		src := dicetest.Fixed{Int: rapid.IntRange(0, 8).Draw(rt, "int")}

		switch in := npcai.Choose(s, src).(type) {
		case action.Move:
			assert.True(rt, s.IsOpen(in.Dir))
		case action.Melee:
			require.NotEmpty(rt, s.Hostiles)
			assert.LessOrEqual(rt, s.Hostiles[0].Dist, 1)
		case action.Shoot:
			require.NotEmpty(rt, s.Hostiles)
			assert.LessOrEqual(rt, s.Hostiles[0].Dist, s.Reach)
		case action.Wait:
		default:
			rt.Fatalf("unexpected intent %T", in)
		}
	})
}
