package gametest

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/present"
)

// ArenaOptions tunes Arena. The zero value is usable.
type ArenaOptions struct {
	W, H   int
	Player geom.Vec2d
	Logger *zap.Logger
	Hooks  game.Hooks
	Ledger game.Ledger
}

// Arena returns a game whose current map is an open, wall-free floor of a site
// in region 0. The player (every attribute 10) stands at opts.Player. Presentation
// events are buffered in the returned queue.
func Arena(src dice.Source, opts ArenaOptions) (*game.Game, *present.Queue) {
	if opts.W == 0 {
		opts.W = 10
	}
	if opts.H == 0 {
		opts.H = 10
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := Rules()
	gd := gamedata.New(Chara("hero", "player", 10, r))
	region := gamemap.NewRegion(0, "plains", gamemap.New(12, 12, "tile.grass"))
	gd.AddRegion(region)
	site := region.AddSite("arena", gamemap.SiteContent{Kind: gamemap.Other}, 1, geom.V(5, 5))
	site.AddFloor(gamemap.New(opts.W, opts.H, "tile.floor"))
	mid := gamemap.SiteMapID(site.ID, 0)
	gd.SetCurrentMapID(mid)
	gd.BindChara(chara.Player, mid)
	m, _ := gd.Map(mid)
	m.LocateChara(chara.Player, opts.Player)

	q := present.NewQueue(1024, opts.Logger)
	g := game.New(gd, game.Deps{
		Rules:   r,
		Catalog: Catalog(),
		Src:     src,
		Log:     gamelog.New(256, opts.Logger),
		Queue:   q,
		Ledger:  opts.Ledger,
		Hooks:   opts.Hooks,
		Session: uuid.New(),
		Logger:  opts.Logger,
	})
	return g, q
}

// AddNPC places c on the current map at p and returns its id.
// It panics when p is occupied or off the map.
func AddNPC(g *game.Game, c *chara.Chara, p geom.Vec2d) chara.ID {
	mid := g.GD.CurrentMapID()
	id := g.GD.AddCharaToMap(c, mid)
	m, _ := g.GD.Map(mid)
	if !m.LocateChara(id, p) {
		panic("gametest: cannot place npc")
	}
	return id
}
