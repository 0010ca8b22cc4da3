// Package gamedata holds the mutable state of a running game: the character
// roster, regions and their maps, which map each character is on, and the
// player's purse, quests and shops.
package gamedata

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// ErrCharaNotFound is returned when a character id is not in the roster.
var ErrCharaNotFound = errors.New("character not found")

// ErrMapNotFound is returned when a map id names no existing map.
var ErrMapNotFound = errors.New("map not found")

// Quest is a task whose reward is paid once it is completed.
type Quest struct {
	ID        string
	Completed bool
	Reward    Reward
}

// Reward is what a quest pays out.
type Reward struct {
	Money int64
	Items []RewardItem
}

// RewardItem is n copies of catalog item ID.
type RewardItem struct {
	ID string
	N  int
}

// GameData is the root of all mutable game state.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: every character bound to a map is present in Roster, and the map's
// tile grid agrees with the binding.
type GameData struct {
	Roster *chara.Roster
	Money  int64
	Quests []Quest

	regions  map[gamemap.RegionID]*gamemap.Region
	charaMap map[chara.ID]gamemap.MapID
	current  gamemap.MapID
	shops    map[string]*shop
}

// New creates empty game state with player as the player character. A nil
// player may be installed later with Roster.SetPlayer.
func New(player *chara.Chara) *GameData {
	gd := &GameData{
		Roster:   chara.NewRoster(),
		regions:  make(map[gamemap.RegionID]*gamemap.Region),
		charaMap: make(map[chara.ID]gamemap.MapID),
		shops:    make(map[string]*shop),
	}
	if player != nil {
		gd.Roster.SetPlayer(player)
	}
	return gd
}

// Player returns the player character.
func (gd *GameData) Player() *chara.Chara {
	c, _ := gd.Roster.Get(chara.Player)
	return c
}

// Chara returns the character with id.
func (gd *GameData) Chara(id chara.ID) (*chara.Chara, error) {
	c, ok := gd.Roster.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrCharaNotFound)
	}
	return c, nil
}

// AddRegion registers r.
func (gd *GameData) AddRegion(r *gamemap.Region) {
	gd.regions[r.ID] = r
}

// Region returns the region with id.
func (gd *GameData) Region(id gamemap.RegionID) (*gamemap.Region, bool) {
	r, ok := gd.regions[id]
	return r, ok
}

// RegionIDs returns every region id in ascending order.
func (gd *GameData) RegionIDs() []gamemap.RegionID {
	out := make([]gamemap.RegionID, 0, len(gd.regions))
	for id := range gd.regions {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Site returns the site with id.
func (gd *GameData) Site(id gamemap.SiteID) (*gamemap.Site, bool) {
	r, ok := gd.regions[id.Region]
	if !ok {
		return nil, false
	}
	return r.Site(id.N)
}

// Map returns the map with id. Site floors that have not been created yet are
// reported as missing.
func (gd *GameData) Map(id gamemap.MapID) (*gamemap.Map, bool) {
	if id.IsRegionMap() {
		r, ok := gd.regions[id.Region()]
		if !ok {
			return nil, false
		}
		return r.Map, true
	}
	s, ok := gd.Site(id.Site)
	if !ok {
		return nil, false
	}
	return s.Floor(id.Floor)
}

// CurrentMapID returns the id of the map the player is on.
func (gd *GameData) CurrentMapID() gamemap.MapID { return gd.current }

// SetCurrentMapID records mid as the player's map.
func (gd *GameData) SetCurrentMapID(mid gamemap.MapID) { gd.current = mid }

// CurrentMap returns the map the player is on.
func (gd *GameData) CurrentMap() (*gamemap.Map, bool) { return gd.Map(gd.current) }

// AddCharaToMap registers c in the roster and binds it to mid. The caller is
// responsible for placing it on a tile.
//
// Postcondition: the returned id is bound to mid.
func (gd *GameData) AddCharaToMap(c *chara.Chara, mid gamemap.MapID) chara.ID {
	id := gd.Roster.Add(c)
	gd.charaMap[id] = mid
	return id
}

// BindChara binds an already registered character to mid, lifting it off the
// map it was on before.
func (gd *GameData) BindChara(id chara.ID, mid gamemap.MapID) {
	if old, ok := gd.charaMap[id]; ok && old != mid {
		if m, ok := gd.Map(old); ok {
			m.RemoveChara(id)
		}
	}
	gd.charaMap[id] = mid
}

// CharaMapID returns the map id is bound to.
func (gd *GameData) CharaMapID(id chara.ID) (gamemap.MapID, bool) {
	mid, ok := gd.charaMap[id]
	return mid, ok
}

// CharaPos returns where id stands on its map.
func (gd *GameData) CharaPos(id chara.ID) (geom.Vec2d, bool) {
	mid, ok := gd.charaMap[id]
	if !ok {
		return geom.Vec2d{}, false
	}
	m, ok := gd.Map(mid)
	if !ok {
		return geom.Vec2d{}, false
	}
	return m.CharaPos(id)
}

// RemoveChara deletes an NPC from its map and the roster. The player is only
// unbound from its map.
func (gd *GameData) RemoveChara(id chara.ID) {
	if mid, ok := gd.charaMap[id]; ok {
		if m, ok := gd.Map(mid); ok {
			m.RemoveChara(id)
		}
		delete(gd.charaMap, id)
	}
	if !id.IsPlayer() {
		gd.Roster.Remove(id)
	}
}

// CharaRelation returns how a regards b according to their factions.
func (gd *GameData) CharaRelation(r *rules.Rules, a, b chara.ID) rules.Relation {
	ca, okA := gd.Roster.Get(a)
	cb, okB := gd.Roster.Get(b)
	if !okA || !okB {
		return rules.RelNeutral
	}
	return r.Relation(ca.Faction, cb.Faction)
}
