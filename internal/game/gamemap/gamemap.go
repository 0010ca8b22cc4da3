// Package gamemap holds the tile maps characters move on, the observed snapshot
// the player remembers, and the region/site/floor hierarchy that owns them.
package gamemap

import (
	"sort"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
)

// SpecialKind classifies a special tile marker.
type SpecialKind int

const (
	SpecialNone SpecialKind = iota
	StairsUp
	StairsDown
	SiteEntrance
)

// ExitFloor is the destination floor of stairs leading out to the region map.
const ExitFloor = -1

// Special marks stairs and site entrances.
type Special struct {
	Kind SpecialKind
	// Floor is the destination floor of stairs.
	Floor int
	// Site is the site a region-map entrance leads into.
	Site SiteID
}

// IsNone reports whether the tile carries no marker.
func (s Special) IsNone() bool { return s.Kind == SpecialNone }

// Tile is one cell of a map.
type Tile struct {
	// Main is the floor tile id.
	Main string
	// Wall is the wall id, empty when there is no wall.
	Wall string
	// Deco is the decoration id, empty when there is none.
	Deco    string
	Chara   chara.ID
	Special Special
	Items   item.List
}

// ObservedItem is the remembered appearance of one item.
type ObservedItem struct {
	ObjID     string
	Variation int
}

// ObservedTile is what the player remembers of a tile.
type ObservedTile struct {
	Seen    bool
	Wall    string
	Deco    string
	Special Special
	Items   []ObservedItem
}

// Map is one floor or region map.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: a character ID appears on at most one tile, and CharaPos agrees
// with the tile grid.
type Map struct {
	Tiles    *geom.Array2d[Tile]
	Observed *geom.Array2d[ObservedTile]
	// Entrance lists where arrivals without stairs are placed.
	Entrance []geom.Vec2d
	Music    string
	charaPos map[chara.ID]geom.Vec2d
}

// New creates a w×h map of mainTile with no walls.
//
// Precondition: w >= 1 and h >= 1.
func New(w, h int, mainTile string) *Map {
	return &Map{
		Tiles:    geom.NewArray2d(w, h, Tile{Main: mainTile}),
		Observed: geom.NewArray2d(w, h, ObservedTile{}),
		charaPos: make(map[chara.ID]geom.Vec2d),
	}
}

// Size returns the map width and height.
func (m *Map) Size() (int, int) { return m.Tiles.Size() }

// InBounds reports whether p lies on the map.
func (m *Map) InBounds(p geom.Vec2d) bool { return m.Tiles.InBounds(p) }

// Tile returns the tile at p. Panics if p is out of bounds.
func (m *Map) Tile(p geom.Vec2d) *Tile { return m.Tiles.At(p) }

// IsPassable reports whether a character may stand on p: it must be on the map,
// carry no wall and its floor tile must be ground.
func (m *Map) IsPassable(cat *catalog.Catalog, p geom.Vec2d) bool {
	if !m.InBounds(p) {
		return false
	}
	t := m.Tiles.At(p)
	return t.Wall == "" && cat.IsGround(t.Main)
}

// IsTransparent reports whether sight passes through p.
func (m *Map) IsTransparent(p geom.Vec2d) bool {
	return m.InBounds(p) && m.Tiles.At(p).Wall == ""
}

// CharaPos returns the position of id on this map.
func (m *Map) CharaPos(id chara.ID) (geom.Vec2d, bool) {
	p, ok := m.charaPos[id]
	return p, ok
}

// CharaAt returns the character standing on p, or NoID.
func (m *Map) CharaAt(p geom.Vec2d) chara.ID {
	if !m.InBounds(p) {
		return chara.NoID
	}
	return m.Tiles.At(p).Chara
}

// LocateChara places id on p, lifting it from its previous tile if it was
// already on the map.
//
// Postcondition: returns false and changes nothing when p is out of bounds or
// occupied by another character.
func (m *Map) LocateChara(id chara.ID, p geom.Vec2d) bool {
	if !m.InBounds(p) {
		return false
	}
	t := m.Tiles.At(p)
	if t.Chara != chara.NoID && t.Chara != id {
		return false
	}
	if old, ok := m.charaPos[id]; ok {
		m.Tiles.At(old).Chara = chara.NoID
	}
	t.Chara = id
	m.charaPos[id] = p
	return true
}

// RemoveChara lifts id off the map. No-op when absent.
func (m *Map) RemoveChara(id chara.ID) {
	if p, ok := m.charaPos[id]; ok {
		m.Tiles.At(p).Chara = chara.NoID
		delete(m.charaPos, id)
	}
}

// SwapChara exchanges the occupants of a and b; either may be empty.
//
// Postcondition: returns false and changes nothing when either tile is off the map.
func (m *Map) SwapChara(a, b geom.Vec2d) bool {
	if !m.InBounds(a) || !m.InBounds(b) {
		return false
	}
	ta, tb := m.Tiles.At(a), m.Tiles.At(b)
	ta.Chara, tb.Chara = tb.Chara, ta.Chara
	if ta.Chara != chara.NoID {
		m.charaPos[ta.Chara] = a
	}
	if tb.Chara != chara.NoID {
		m.charaPos[tb.Chara] = b
	}
	return true
}

// MoveChara steps id one tile in dir, swapping with any occupant.
func (m *Map) MoveChara(id chara.ID, dir geom.Direction) bool {
	p, ok := m.charaPos[id]
	if !ok {
		return false
	}
	return m.SwapChara(p, p.Add(dir.AsVec()))
}

// Charas returns the IDs of every character on the map in ascending order.
func (m *Map) Charas() []chara.ID {
	out := make([]chara.ID, 0, len(m.charaPos))
	for id := range m.charaPos {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LocateItem drops n copies of it on p.
//
// Precondition: p is on the map.
func (m *Map) LocateItem(it item.Item, p geom.Vec2d, n int) {
	m.Tiles.At(p).Items.Append(it, n)
}

// SearchStairs returns the position of the stairs leading to floor.
func (m *Map) SearchStairs(floor int) (geom.Vec2d, bool) {
	var found geom.Vec2d
	ok := false
	m.Tiles.Each(func(p geom.Vec2d, t *Tile) bool {
		if (t.Special.Kind == StairsUp || t.Special.Kind == StairsDown) && t.Special.Floor == floor {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}

// SearchSpecial returns the first tile carrying a marker of kind.
func (m *Map) SearchSpecial(kind SpecialKind) (geom.Vec2d, bool) {
	var found geom.Vec2d
	ok := false
	m.Tiles.Each(func(p geom.Vec2d, t *Tile) bool {
		if t.Special.Kind == kind {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}
