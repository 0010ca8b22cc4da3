package gamemap

import (
	"sort"

	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// RegionID identifies a region.
type RegionID int

// SiteID identifies a site within a region.
type SiteID struct {
	Region RegionID
	N      int
}

// MapID identifies a map: a region's overworld map, or one floor of a site.
type MapID struct {
	Site     SiteID
	Floor    int
	OnRegion bool
}

// RegionMapID returns the id of the overworld map of rid.
func RegionMapID(rid RegionID) MapID {
	return MapID{Site: SiteID{Region: rid, N: -1}, OnRegion: true}
}

// SiteMapID returns the id of floor of site sid.
func SiteMapID(sid SiteID, floor int) MapID {
	return MapID{Site: sid, Floor: floor}
}

// IsRegionMap reports whether id names a region's overworld map.
func (id MapID) IsRegionMap() bool { return id.OnRegion }

// Region returns the region the map belongs to.
func (id MapID) Region() RegionID { return id.Site.Region }

// SiteKind classifies what a site contains.
type SiteKind int

const (
	AutoGenDungeon SiteKind = iota
	Town
	Base
	Other
)

// SiteContent describes what a site contains.
type SiteContent struct {
	Kind SiteKind
	// Dungeon is set for AutoGenDungeon sites.
	Dungeon rules.DungeonKind
}

// DungeonKind returns the site's dungeon kind, or the default kind for sites
// that are not generated dungeons.
func (c SiteContent) DungeonKind() rules.DungeonKind {
	if c.Kind == AutoGenDungeon && c.Dungeon != "" {
		return c.Dungeon
	}
	return rules.DefaultDungeonKind
}

// Site is a place on a region map with one or more floors.
type Site struct {
	ID       SiteID
	Name     string
	Content  SiteContent
	MaxFloor int
	// Pos is where the site's entrance lies on the region map.
	Pos    geom.Vec2d
	floors []*Map
}

// Floor returns floor n of the site if it has been created.
func (s *Site) Floor(n int) (*Map, bool) {
	if n < 0 || n >= len(s.floors) {
		return nil, false
	}
	return s.floors[n], true
}

// FloorCount returns how many floors have been created.
func (s *Site) FloorCount() int { return len(s.floors) }

// AddFloor appends m as the next floor and returns its index.
func (s *Site) AddFloor(m *Map) int {
	s.floors = append(s.floors, m)
	return len(s.floors) - 1
}

// Region is an overworld map and the sites on it.
type Region struct {
	ID       RegionID
	Name     string
	Map      *Map
	sites    map[int]*Site
	nextSite int
}

// NewRegion creates a region around its overworld map.
func NewRegion(id RegionID, name string, m *Map) *Region {
	return &Region{ID: id, Name: name, Map: m, sites: make(map[int]*Site)}
}

// AddSite registers a new site and returns it.
//
// Postcondition: the returned site's ID is unique within the region.
func (r *Region) AddSite(name string, content SiteContent, maxFloor int, pos geom.Vec2d) *Site {
	s := &Site{
		ID:       SiteID{Region: r.ID, N: r.nextSite},
		Name:     name,
		Content:  content,
		MaxFloor: maxFloor,
		Pos:      pos,
	}
	r.sites[s.ID.N] = s
	r.nextSite++
	return s
}

// Site returns site n of the region.
func (r *Region) Site(n int) (*Site, bool) {
	s, ok := r.sites[n]
	return s, ok
}

// Sites returns every site ordered by id.
func (r *Region) Sites() []*Site {
	out := make([]*Site, 0, len(r.sites))
	for _, s := range r.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.N < out[j].ID.N })
	return out
}

// CountSites returns how many sites have the given kind.
func (r *Region) CountSites(kind SiteKind) int {
	n := 0
	for _, s := range r.sites {
		if s.Content.Kind == kind {
			n++
		}
	}
	return n
}
