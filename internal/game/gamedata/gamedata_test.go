package gamedata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/gametest"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

func newWorld(t *testing.T) (*gamedata.GameData, gamemap.MapID) {
	t.Helper()
	r := gametest.Rules()
	gd := gamedata.New(gametest.Chara("hero", "player", 10, r))
	region := gamemap.NewRegion(0, "plains", gamemap.New(8, 8, "tile.grass"))
	gd.AddRegion(region)
	site := region.AddSite("ruin", gamemap.SiteContent{Kind: gamemap.AutoGenDungeon, Dungeon: "ruin"}, 2, geom.V(2, 2))
	site.AddFloor(gamemap.New(6, 6, "tile.floor"))
	mid := gamemap.SiteMapID(site.ID, 0)
	gd.SetCurrentMapID(mid)
	return gd, mid
}

func TestGameData_MapLookup(t *testing.T) {
	gd, mid := newWorld(t)
	_, ok := gd.Map(mid)
	assert.True(t, ok)
	_, ok = gd.Map(gamemap.RegionMapID(0))
	assert.True(t, ok)
	_, ok = gd.Map(gamemap.SiteMapID(mid.Site, 1))
	assert.False(t, ok, "floor 1 not created yet")
	_, ok = gd.Map(gamemap.RegionMapID(7))
	assert.False(t, ok)
	_, ok = gd.CurrentMap()
	assert.True(t, ok)
}

func TestGameData_AddAndRemoveChara(t *testing.T) {
	gd, mid := newWorld(t)
	r := gametest.Rules()
	id := gd.AddCharaToMap(gametest.Chara("kobold", "monster", 6, r), mid)
	m, _ := gd.Map(mid)
	require.True(t, m.LocateChara(id, geom.V(3, 3)))

	p, ok := gd.CharaPos(id)
	require.True(t, ok)
	assert.Equal(t, geom.V(3, 3), p)
	assert.Equal(t, rules.RelHostile, gd.CharaRelation(r, chara.Player, id))

	gd.RemoveChara(id)
	_, err := gd.Chara(id)
	assert.ErrorIs(t, err, gamedata.ErrCharaNotFound)
	assert.Equal(t, chara.NoID, m.CharaAt(geom.V(3, 3)))
}

func TestBindChara_LiftsFromOldMap(t *testing.T) {
	gd, mid := newWorld(t)
	m, _ := gd.Map(mid)
	gd.BindChara(chara.Player, mid)
	require.True(t, m.LocateChara(chara.Player, geom.V(1, 1)))

	gd.BindChara(chara.Player, gamemap.RegionMapID(0))
	assert.Equal(t, chara.NoID, m.CharaAt(geom.V(1, 1)))
	got, _ := gd.CharaMapID(chara.Player)
	assert.True(t, got.IsRegionMap())
}

func TestItemLocation_ListAddressing(t *testing.T) {
	gd, mid := newWorld(t)
	gd.Player().Items.Append(item.Item{ObjID: "potion.heal"}, 2)

	loc, err := gd.PlayerItemLocation("potion.heal")
	require.NoError(t, err)
	_, err = gd.PlayerItemLocation("rock")
	assert.ErrorIs(t, err, gamedata.ErrItemNotFound)

	ground := gamedata.OnMap{Map: mid, Pos: geom.V(2, 2)}
	require.NoError(t, gd.MoveItem(loc, ground, 1))
	assert.Equal(t, 1, gd.Player().Items.CountObj("potion.heal"))
	l, err := gd.ItemList(ground)
	require.NoError(t, err)
	assert.Equal(t, 1, l.CountObj("potion.heal"))

	err = gd.MoveItem(loc, ground, 5)
	assert.ErrorIs(t, err, gamedata.ErrItemNotFound)
	assert.Equal(t, 1, gd.Player().Items.CountObj("potion.heal"), "failed move leaves source intact")

	_, err = gd.ItemList(gamedata.ShopList{Shop: "none"})
	assert.ErrorIs(t, err, gamedata.ErrItemNotFound)
	gd.AddShop("smith").Append(item.Item{ObjID: "sword.short"}, 1)
	s, err := gd.Item(gamedata.ItemLocation{List: gamedata.ShopList{Shop: "smith"}, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, "sword.short", s.Item.ObjID)

	_, err = gd.ItemList(gamedata.OnMap{Map: gamemap.SiteMapID(mid.Site, 4)})
	assert.ErrorIs(t, err, gamedata.ErrMapNotFound)
}

func TestProperty_MoveConservesCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := gametest.Rules()
		gd := gamedata.New(gametest.Chara("hero", "player", 10, r))
		shop := gd.AddShop("s")
		start := rapid.IntRange(1, 20).Draw(t, "start")
		gd.Player().Items.Append(item.Item{ObjID: "rock"}, start)

		moves := rapid.IntRange(0, 10).Draw(t, "moves")
		for i := 0; i < moves; i++ {
			n := rapid.IntRange(1, 5).Draw(t, "n")
			loc := gamedata.ItemLocation{List: gamedata.CharaList{Chara: chara.Player}, Index: 0}
			_ = gd.MoveItem(loc, gamedata.ShopList{Shop: "s"}, n)
		}
		total := gd.Player().Items.CountObj("rock") + shop.CountObj("rock")
		if total != start {
			t.Fatalf("total %d, want %d", total, start)
		}
	})
}
