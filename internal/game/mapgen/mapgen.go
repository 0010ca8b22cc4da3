// Package mapgen lays out dungeon floors: rectangular rooms joined by
// L-shaped corridors, scattered water and the stairs between floors.
package mapgen

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// maxRoomAttempts bounds room placement tries per requested room.
const maxRoomAttempts = 4

// Floor describes which floor of a site is being built.
type Floor struct {
	// N is the floor index, starting at 0.
	N int
	// Max is the number of floors the site has.
	Max int
}

// Generator builds floors from dungeon parameters.
type Generator struct {
	src    dice.Source
	logger *zap.Logger
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src dice.Source, logger *zap.Logger) *Generator {
	return &Generator{src: src, logger: logger}
}

// Generate builds one floor.
//
// Precondition: p.MapSize is at least 3×3 and p.FloorTile names a ground tile.
// Postcondition: every room is reachable from the first room, which holds the
// up stairs and the entrance; the last room holds the down stairs unless f is
// the bottom floor.
func (g *Generator) Generate(p rules.DungeonGen, f Floor) *gamemap.Map {
	w, h := p.MapSize[0], p.MapSize[1]
	m := gamemap.New(w, h, p.FloorTile)
	m.Music = p.Music
	m.Tiles.Each(func(_ geom.Vec2d, t *gamemap.Tile) bool {
		t.Wall = p.Wall
		return true
	})

	rooms := g.placeRooms(p, w, h)
	for _, r := range rooms {
		carveRect(m, r, p.FloorTile)
	}
	if p.WaterTile != "" && p.WaterProbability > 0 {
		g.scatterWater(m, rooms, p)
	}
	for i := 1; i < len(rooms); i++ {
		g.carveCorridor(m, rooms[i-1].Center(), rooms[i].Center(), p.FloorTile)
	}

	first := rooms[0].Center()
	m.Entrance = []geom.Vec2d{first}
	m.Tile(first).Special = gamemap.Special{Kind: gamemap.StairsUp, Floor: f.N - 1}
	if f.N+1 < f.Max {
		down := rooms[len(rooms)-1].Center()
		if down == first {
			down = geom.V(rooms[0].X2, first.Y)
		}
		if down != first {
			m.Tile(down).Special = gamemap.Special{Kind: gamemap.StairsDown, Floor: f.N + 1}
		}
	}

	g.logger.Debug("floor generated",
		zap.Int("floor", f.N),
		zap.Int("rooms", len(rooms)),
		zap.Int("width", w),
		zap.Int("height", h),
	)
	return m
}

// placeRooms returns non-overlapping rooms inside the one-tile border. At least
// one room is always returned.
func (g *Generator) placeRooms(p rules.DungeonGen, w, h int) []geom.Rect {
	var rooms []geom.Rect
	minSize, maxSize := max(p.RoomSize[0], 1), max(p.RoomSize[1], p.RoomSize[0], 1)
	for i := 0; i < p.MaxRooms*maxRoomAttempts && len(rooms) < p.MaxRooms; i++ {
		rw := dice.Range(g.src, minSize, maxSize)
		rh := dice.Range(g.src, minSize, maxSize)
		if rw > w-2 || rh > h-2 {
			continue
		}
		x := dice.Range(g.src, 1, w-rw-1)
		y := dice.Range(g.src, 1, h-rh-1)
		r := geom.Rect{X1: x, Y1: y, X2: x + rw - 1, Y2: y + rh - 1}
		padded := geom.Rect{X1: r.X1 - 1, Y1: r.Y1 - 1, X2: r.X2 + 1, Y2: r.Y2 + 1}
		overlaps := false
		for _, o := range rooms {
			if padded.Intersects(o) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		rooms = append(rooms, geom.Rect{X1: 1, Y1: 1, X2: max(w-2, 1), Y2: max(h-2, 1)})
	}
	return rooms
}

// scatterWater floods room tiles off each room's center cross, so the
// corridors that join room centers stay connected.
func (g *Generator) scatterWater(m *gamemap.Map, rooms []geom.Rect, p rules.DungeonGen) {
	for _, r := range rooms {
		c := r.Center()
		for y := r.Y1; y <= r.Y2; y++ {
			for x := r.X1; x <= r.X2; x++ {
				if x == c.X || y == c.Y {
					continue
				}
				if dice.Bernoulli(g.src, p.WaterProbability) {
					m.Tile(geom.V(x, y)).Main = p.WaterTile
				}
			}
		}
	}
}

func (g *Generator) carveCorridor(m *gamemap.Map, a, b geom.Vec2d, floor string) {
	if g.src.Intn(2) == 0 {
		carveH(m, a.X, b.X, a.Y, floor)
		carveV(m, a.Y, b.Y, b.X, floor)
	} else {
		carveV(m, a.Y, b.Y, a.X, floor)
		carveH(m, a.X, b.X, b.Y, floor)
	}
}

func carveRect(m *gamemap.Map, r geom.Rect, floor string) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			dig(m, geom.V(x, y), floor)
		}
	}
}

func carveH(m *gamemap.Map, x1, x2, y int, floor string) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		dig(m, geom.V(x, y), floor)
	}
}

func carveV(m *gamemap.Map, y1, y2, x int, floor string) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		dig(m, geom.V(x, y), floor)
	}
}

func dig(m *gamemap.Map, p geom.Vec2d, floor string) {
	if !m.InBounds(p) {
		return
	}
	t := m.Tile(p)
	t.Wall = ""
	t.Main = floor
}
