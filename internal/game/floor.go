package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/mapgen"
	"github.com/cory-johannsen/ruins/internal/game/populate"
	"github.com/cory-johannsen/ruins/internal/game/present"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// ErrNoSuchSite is returned when a site id names no site.
var ErrNoSuchSite = errors.New("site not found")

// ErrFloorLimit is returned when a floor beyond a site's last floor is requested.
var ErrFloorLimit = errors.New("site has no more floors")

// ExtendSiteFloor generates the next floor of sid, populates it with NPCs and
// items and records it in the ledger.
//
// Postcondition: on success the site has exactly one more floor, whose id is returned.
func (g *Game) ExtendSiteFloor(ctx context.Context, sid gamemap.SiteID) (gamemap.MapID, error) {
	site, ok := g.GD.Site(sid)
	if !ok {
		return gamemap.MapID{}, fmt.Errorf("extending %+v: %w", sid, ErrNoSuchSite)
	}
	n := site.FloorCount()
	if n >= site.MaxFloor {
		return gamemap.MapID{}, fmt.Errorf("extending %q past floor %d: %w", site.Name, n, ErrFloorLimit)
	}
	kind := site.Content.DungeonKind()
	dg, ok := g.Rules.Dungeon(kind)
	if !ok {
		return gamemap.MapID{}, fmt.Errorf("extending %q: no generation rules for dungeon kind %q", site.Name, kind)
	}

	site.AddFloor(g.Floors.Generate(dg, mapgen.Floor{N: n, Max: site.MaxFloor}))
	mid := gamemap.SiteMapID(sid, n)
	npcs := g.Populator.GenNPCs(g.GD, mid, g.Rules.NPCGen.NPCsPerFloor, n+1)
	items := g.Populator.GenItems(g.GD, mid)

	g.Logger.Info("floor created",
		zap.String("site", site.Name),
		zap.Int("floor", n),
		zap.String("dungeon_kind", string(kind)),
		zap.Int("npcs", npcs),
		zap.Int("items", items),
	)
	inserted, err := g.Ledger.Record(ctx, FloorRecord{
		Session:     g.Session,
		Map:         mid,
		SiteName:    site.Name,
		DungeonKind: kind,
		NPCs:        npcs,
		Items:       items,
		CreatedAt:   time.Now().UTC(),
	})
	switch {
	case err != nil:
		g.Logger.Warn("recording floor", zap.String("site", site.Name), zap.Int("floor", n), zap.Error(err))
	case !inserted:
		g.Logger.Warn("floor already recorded", zap.String("site", site.Name), zap.Int("floor", n))
	}
	g.Hooks.OnFloorCreated(site.Name, n)
	return mid, nil
}

// EnsureFloor creates the floors of mid's site up to and including mid.Floor.
// Existing floors are never regenerated.
func (g *Game) EnsureFloor(ctx context.Context, mid gamemap.MapID) error {
	if mid.IsRegionMap() {
		return nil
	}
	for {
		if _, ok := g.GD.Map(mid); ok {
			return nil
		}
		if _, err := g.ExtendSiteFloor(ctx, mid.Site); err != nil {
			return err
		}
	}
}

// SwitchMap moves the player to mid, creating the floor on first entry. The
// player arrives on the site's entrance when leaving a site for its region, on
// the stairs leading back to the previous floor, or else on the map's first
// entrance.
//
// Postcondition: on success the current map is mid and the player stands on it.
func (g *Game) SwitchMap(ctx context.Context, mid gamemap.MapID) error {
	g.Queue.Push(present.UIRequest{Kind: present.StopCentering})
	g.ClearTarget()

	if err := g.EnsureFloor(ctx, mid); err != nil {
		return fmt.Errorf("switching map: %w", err)
	}
	m, ok := g.GD.Map(mid)
	if !ok {
		return fmt.Errorf("switching map to %+v: map missing", mid)
	}
	prev := g.GD.CurrentMapID()
	g.GD.SetCurrentMapID(mid)
	g.GD.BindChara(chara.Player, mid)

	pos := g.arrivalPos(m, prev, mid)
	if !m.LocateChara(chara.Player, pos) {
		if p, ok := populate.ChooseEmptyTile(m, g.Catalog, g.Src); ok {
			pos = p
			m.LocateChara(chara.Player, pos)
		} else {
			return fmt.Errorf("switching map to %+v: no room for the player", mid)
		}
	}
	g.Logger.Debug("switched map", zap.Any("from", prev), zap.Any("to", mid), zap.Int("x", pos.X), zap.Int("y", pos.Y))

	g.Queue.Push(present.Sound{Name: "floor-change"})
	g.Queue.Push(present.Music{Name: m.Music})
	g.UpdateView()

	if prev.IsRegionMap() && !mid.IsRegionMap() {
		if site, ok := g.GD.Site(mid.Site); ok {
			g.Hooks.OnEnterSite(site.Name)
		}
	}
	return nil
}

func (g *Game) arrivalPos(m *gamemap.Map, prev, mid gamemap.MapID) geom.Vec2d {
	if mid.IsRegionMap() && !prev.IsRegionMap() && mid.Region() == prev.Region() {
		if site, ok := g.GD.Site(prev.Site); ok {
			return site.Pos
		}
	}
	prevFloor := prev.Floor
	if prev.IsRegionMap() {
		prevFloor = gamemap.ExitFloor
	}
	if !mid.IsRegionMap() {
		if p, ok := m.SearchStairs(prevFloor); ok {
			return p
		}
	}
	if len(m.Entrance) > 0 {
		return m.Entrance[0]
	}
	return geom.V(0, 0)
}

// GenDungeonMax adds generated dungeon sites to region rid until it holds
// region.max_dungeons of them. Each site's entrance is marked on an empty tile
// of the region map.
//
// Postcondition: returns the number of sites added.
func (g *Game) GenDungeonMax(rid gamemap.RegionID) int {
	region, ok := g.GD.Region(rid)
	if !ok {
		g.Logger.Warn("dungeon generation for unknown region", zap.Int("region", int(rid)))
		return 0
	}
	kinds, weights := g.Rules.Region.DungeonKindWeights.Sorted()
	added := 0
	for region.CountSites(gamemap.AutoGenDungeon) < g.Rules.Region.MaxDungeons {
		idx := dice.WeightedIndex(g.Src, weights)
		if idx < 0 {
			g.Logger.Warn("no dungeon kind has a positive weight")
			return added
		}
		kind := rules.DungeonKind(kinds[idx])
		dg, ok := g.Rules.Dungeon(kind)
		if !ok {
			g.Logger.Warn("unknown dungeon kind", zap.String("dungeon_kind", string(kind)))
			return added
		}
		pos, ok := populate.ChooseEmptyTile(region.Map, g.Catalog, g.Src)
		if !ok {
			g.Logger.Warn("no room on the region map for another dungeon", zap.Int("region", int(rid)))
			return added
		}
		floors := dice.Range(g.Src, max(dg.FloorRange[0], 1), max(dg.FloorRange[1], dg.FloorRange[0], 1))
		name := fmt.Sprintf("%s-%d", kind, region.CountSites(gamemap.AutoGenDungeon)+1)
		site := region.AddSite(name, gamemap.SiteContent{Kind: gamemap.AutoGenDungeon, Dungeon: kind}, floors, pos)
		region.Map.Tile(pos).Special = gamemap.Special{Kind: gamemap.SiteEntrance, Site: site.ID}
		added++
		g.Logger.Debug("dungeon site added", zap.String("site", name), zap.Int("floors", floors))
	}
	return added
}
