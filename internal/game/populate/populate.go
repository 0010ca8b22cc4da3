// Package populate places monsters and items on freshly generated floors and
// keeps the player's observed snapshot of a map up to date.
package populate

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// maxTry is the number of random draws ChooseEmptyTile makes before scanning.
const maxTry = 10

// isEmpty reports whether a new character may be placed on t.
func isEmpty(cat *catalog.Catalog, t *gamemap.Tile) bool {
	return t.Wall == "" && t.Chara == chara.NoID && t.Special.IsNone() && cat.IsGround(t.Main)
}

// ChooseEmptyTile picks a random tile with no wall, no character and no special
// marker whose floor is ground. It tries maxTry uniform draws, then falls back
// to choosing uniformly among every qualifying tile.
//
// Postcondition: ok is false only when no tile qualifies. m is never modified.
func ChooseEmptyTile(m *gamemap.Map, cat *catalog.Catalog, src dice.Source) (geom.Vec2d, bool) {
	w, h := m.Size()
	if w == 0 || h == 0 {
		return geom.Vec2d{}, false
	}
	for i := 0; i < maxTry; i++ {
		p := geom.V(src.Intn(w), src.Intn(h))
		if isEmpty(cat, m.Tile(p)) {
			return p, true
		}
	}

	n := 0
	m.Tiles.Each(func(_ geom.Vec2d, t *gamemap.Tile) bool {
		if isEmpty(cat, t) {
			n++
		}
		return true
	})
	if n == 0 {
		return geom.Vec2d{}, false
	}
	r := src.Intn(n)
	var found geom.Vec2d
	m.Tiles.Each(func(p geom.Vec2d, t *gamemap.Tile) bool {
		if !isEmpty(cat, t) {
			return true
		}
		if r == 0 {
			found = p
			return false
		}
		r--
		return true
	})
	return found, true
}

// Populator places NPCs and items on maps.
type Populator struct {
	cat    *catalog.Catalog
	rules  *rules.Rules
	src    dice.Source
	charas *chara.Generator
	items  *item.Generator
	logger *zap.Logger
}

// New creates a Populator. All generators must draw from src.
func New(cat *catalog.Catalog, r *rules.Rules, src dice.Source, charas *chara.Generator, items *item.Generator, logger *zap.Logger) *Populator {
	return &Populator{cat: cat, rules: r, src: src, charas: charas, items: items, logger: logger}
}

// GenNPCs creates up to n NPCs suited to the site's dungeon kind and floorLevel
// and places each on an empty tile of mid. It stops early, logging a warning,
// when no empty tile remains.
//
// Precondition: mid names an existing site floor.
// Postcondition: returns the number of NPCs placed, at most n.
func (p *Populator) GenNPCs(gd *gamedata.GameData, mid gamemap.MapID, n, floorLevel int) int {
	m, ok := gd.Map(mid)
	if !ok {
		p.logger.Warn("npc generation on missing map", zap.Any("map", mid))
		return 0
	}
	kind := rules.DefaultDungeonKind
	if site, ok := gd.Site(mid.Site); ok {
		kind = site.Content.DungeonKind()
	}

	placed := 0
	for i := 0; i < n; i++ {
		pos, ok := ChooseEmptyTile(m, p.cat, p.src)
		if !ok {
			p.logger.Warn("failed npc generation because empty tile not found",
				zap.Int("requested", n),
				zap.Int("placed", placed),
			)
			return placed
		}
		c, ok := p.charas.NewNPC(kind, floorLevel)
		if !ok {
			continue
		}
		cid := gd.AddCharaToMap(c, mid)
		m.LocateChara(cid, pos)
		placed++
		p.logger.Debug("npc generated",
			zap.Stringer("id", cid),
			zap.String("template", c.TemplateID),
			zap.Int("x", pos.X),
			zap.Int("y", pos.Y),
		)
	}
	return placed
}

// GenItems scatters items over a generated dungeon floor: every tile without a
// wall independently receives one item with the dungeon kind's
// item_gen_probability. Sites that are not generated dungeons get nothing. A
// probability outside [0, 1] is logged and nothing is placed.
//
// Postcondition: returns the number of items placed.
func (p *Populator) GenItems(gd *gamedata.GameData, mid gamemap.MapID) int {
	site, ok := gd.Site(mid.Site)
	if !ok || site.Content.Kind != gamemap.AutoGenDungeon {
		return 0
	}
	kind := site.Content.DungeonKind()
	dg, ok := p.rules.Dungeon(kind)
	if !ok {
		p.logger.Warn("unknown dungeon kind", zap.String("dungeon_kind", string(kind)))
		return 0
	}
	prob := dg.ItemGenProbability
	if prob < 0 || prob > 1 {
		p.logger.Warn("invalid value for item_gen_probability",
			zap.Float64("value", prob),
			zap.String("dungeon_kind", string(kind)),
		)
		return 0
	}
	m, ok := gd.Map(mid)
	if !ok {
		return 0
	}

	placed := 0
	m.Tiles.Each(func(pos geom.Vec2d, t *gamemap.Tile) bool {
		if t.Wall != "" {
			return true
		}
		if !dice.Bernoulli(p.src, prob) {
			return true
		}
		if it, ok := p.items.DungeonItem(mid.Floor, kind); ok {
			m.LocateItem(it, pos, 1)
			placed++
		}
		return true
	})
	p.logger.Debug("items generated", zap.Any("map", mid), zap.Int("count", placed))
	return placed
}

// Visibility answers whether a tile is currently visible.
type Visibility interface {
	Visible(p geom.Vec2d) bool
}

// UpdateObservedMap copies what is currently visible on m into its observed
// snapshot: wall, decoration, special marker and up to maxItems items. Tiles
// not visible keep whatever was last observed.
func UpdateObservedMap(m *gamemap.Map, vis Visibility, maxItems int) {
	m.Tiles.Each(func(pos geom.Vec2d, t *gamemap.Tile) bool {
		if !vis.Visible(pos) {
			return true
		}
		o := m.Observed.At(pos)
		o.Seen = true
		o.Wall = t.Wall
		o.Deco = t.Deco
		o.Special = t.Special
		o.Items = o.Items[:0]
		for i, s := range t.Items.Stacks() {
			if i >= maxItems {
				break
			}
			o.Items = append(o.Items, gamemap.ObservedItem{ObjID: s.Item.ObjID, Variation: s.Item.ImageVariation()})
		}
		return true
	})
}
