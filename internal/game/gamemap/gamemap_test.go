package gamemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/gametest"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
)

func TestMap_IsPassable(t *testing.T) {
	cat := gametest.Catalog()
	m := gamemap.New(3, 1, "tile.floor")
	m.Tile(geom.V(1, 0)).Wall = "wall.stone"
	m.Tile(geom.V(2, 0)).Main = "tile.water"

	assert.True(t, m.IsPassable(cat, geom.V(0, 0)))
	assert.False(t, m.IsPassable(cat, geom.V(1, 0)), "walled")
	assert.False(t, m.IsPassable(cat, geom.V(2, 0)), "water")
	assert.False(t, m.IsPassable(cat, geom.V(3, 0)), "out of bounds")
	assert.False(t, m.IsTransparent(geom.V(1, 0)))
}

func TestMap_LocateChara(t *testing.T) {
	m := gamemap.New(4, 4, "tile.floor")
	require.True(t, m.LocateChara(chara.Player, geom.V(1, 1)))
	require.True(t, m.LocateChara(chara.Player, geom.V(2, 2)))

	assert.Equal(t, chara.NoID, m.CharaAt(geom.V(1, 1)), "old tile cleared")
	assert.Equal(t, chara.Player, m.CharaAt(geom.V(2, 2)))

	assert.False(t, m.LocateChara(2, geom.V(2, 2)), "occupied")
	assert.False(t, m.LocateChara(2, geom.V(9, 9)), "out of bounds")
	_, ok := m.CharaPos(2)
	assert.False(t, ok)

	m.RemoveChara(chara.Player)
	assert.Equal(t, chara.NoID, m.CharaAt(geom.V(2, 2)))
	assert.Empty(t, m.Charas())
}

func TestMap_SwapChara(t *testing.T) {
	m := gamemap.New(3, 3, "tile.floor")
	require.True(t, m.LocateChara(chara.Player, geom.V(0, 0)))
	require.True(t, m.LocateChara(2, geom.V(1, 0)))

	require.True(t, m.SwapChara(geom.V(0, 0), geom.V(1, 0)))
	p, _ := m.CharaPos(chara.Player)
	q, _ := m.CharaPos(2)
	assert.Equal(t, geom.V(1, 0), p)
	assert.Equal(t, geom.V(0, 0), q)

	require.True(t, m.MoveChara(chara.Player, geom.DirS))
	p, _ = m.CharaPos(chara.Player)
	assert.Equal(t, geom.V(1, 1), p)
	assert.Equal(t, chara.NoID, m.CharaAt(geom.V(1, 0)))

	assert.False(t, m.MoveChara(chara.Player, geom.Direction{HDir: 0, VDir: 5}))
	assert.False(t, m.MoveChara(9, geom.DirN))
}

func TestProperty_PositionsStayConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := gamemap.New(5, 5, "tile.floor")
		ids := []chara.ID{1, 2, 3}
		for i, id := range ids {
			m.LocateChara(id, geom.V(i, 0))
		}
		steps := rapid.IntRange(0, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := ids[rapid.IntRange(0, len(ids)-1).Draw(t, "who")]
			dir := geom.AllDirections[rapid.IntRange(0, len(geom.AllDirections)-1).Draw(t, "dir")]
			m.MoveChara(id, dir)
		}
		for _, id := range ids {
			p, ok := m.CharaPos(id)
			if !ok {
				t.Fatalf("%s lost", id)
			}
			if m.CharaAt(p) != id {
				t.Fatalf("tile at %v holds %s, want %s", p, m.CharaAt(p), id)
			}
		}
	})
}

func TestMap_SearchStairs(t *testing.T) {
	m := gamemap.New(4, 4, "tile.floor")
	m.Tile(geom.V(3, 2)).Special = gamemap.Special{Kind: gamemap.StairsUp, Floor: 0}
	m.Tile(geom.V(0, 3)).Special = gamemap.Special{Kind: gamemap.StairsDown, Floor: 2}

	p, ok := m.SearchStairs(0)
	require.True(t, ok)
	assert.Equal(t, geom.V(3, 2), p)

	p, ok = m.SearchStairs(2)
	require.True(t, ok)
	assert.Equal(t, geom.V(0, 3), p)

	_, ok = m.SearchStairs(5)
	assert.False(t, ok)
}

func TestMap_LocateItemStacks(t *testing.T) {
	m := gamemap.New(2, 2, "tile.floor")
	m.LocateItem(item.Item{ObjID: "rock"}, geom.V(1, 1), 2)
	m.LocateItem(item.Item{ObjID: "rock"}, geom.V(1, 1), 1)
	assert.Equal(t, 3, m.Tile(geom.V(1, 1)).Items.CountObj("rock"))
	assert.Equal(t, 1, m.Tile(geom.V(1, 1)).Items.Len())
}

func TestRegion_Sites(t *testing.T) {
	r := gamemap.NewRegion(0, "plains", gamemap.New(8, 8, "tile.grass"))
	a := r.AddSite("ruin-a", gamemap.SiteContent{Kind: gamemap.AutoGenDungeon, Dungeon: "cave"}, 3, geom.V(1, 1))
	b := r.AddSite("town", gamemap.SiteContent{Kind: gamemap.Town}, 1, geom.V(5, 5))

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, r.CountSites(gamemap.AutoGenDungeon))
	assert.Equal(t, []*gamemap.Site{a, b}, r.Sites())
	assert.Equal(t, "cave", string(a.Content.DungeonKind()))
	assert.Equal(t, "ruin", string(b.Content.DungeonKind()))

	_, ok := a.Floor(0)
	assert.False(t, ok)
	assert.Equal(t, 0, a.AddFloor(gamemap.New(2, 2, "tile.floor")))
	_, ok = a.Floor(0)
	assert.True(t, ok)

	rid := gamemap.RegionMapID(0)
	assert.True(t, rid.IsRegionMap())
	assert.False(t, gamemap.SiteMapID(a.ID, 0).IsRegionMap())
}
