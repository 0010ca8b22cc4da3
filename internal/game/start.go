package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/populate"
)

// PlayerTemplate is the catalog id of the template the player is built from.
const PlayerTemplate = "player"

// ErrNoRegionTile is returned by Start when the rule table names no region tile.
var ErrNoRegionTile = errors.New("region.tile is not set")

const (
	defaultRegionW = 32
	defaultRegionH = 24
)

// Start creates a new game: the player is built from PlayerTemplate, region 0
// is laid out from the rule table's region settings and filled with dungeon
// sites, and the player is placed on an empty tile of the region map.
//
// Precondition: the same as New.
// Postcondition: on success the current map is region 0's map and the view is up to date.
func Start(ctx context.Context, name string, d Deps) (*Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg := d.Rules.Region
	if reg.Tile == "" {
		return nil, ErrNoRegionTile
	}
	if _, err := d.Catalog.Tiles.Lookup(reg.Tile); err != nil {
		return nil, fmt.Errorf("region tile: %w", err)
	}
	def, err := d.Catalog.Charas.Lookup(PlayerTemplate)
	if err != nil {
		return nil, fmt.Errorf("player template: %w", err)
	}

	g := New(gamedata.New(nil), d)
	player, err := g.Charas.FromTemplate(def, def.Level)
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	g.GD.Roster.SetPlayer(player)

	w, h := reg.MapSize[0], reg.MapSize[1]
	if w <= 0 || h <= 0 {
		w, h = defaultRegionW, defaultRegionH
	}
	m := gamemap.New(w, h, reg.Tile)
	m.Music = reg.Music
	g.GD.AddRegion(gamemap.NewRegion(0, name, m))
	sites := g.GenDungeonMax(0)

	mid := gamemap.RegionMapID(0)
	pos, ok := populate.ChooseEmptyTile(m, g.Catalog, g.Src)
	if !ok {
		return nil, fmt.Errorf("starting in %q: no room for the player", name)
	}
	g.GD.SetCurrentMapID(mid)
	g.GD.BindChara(chara.Player, mid)
	m.LocateChara(chara.Player, pos)
	m.Entrance = append(m.Entrance, pos)
	g.UpdateView()

	g.Logger.Info("game started",
		zap.String("region", name),
		zap.String("player", player.Name),
		zap.Int("sites", sites),
		zap.Int("x", pos.X), zap.Int("y", pos.Y),
	)
	return g, nil
}
