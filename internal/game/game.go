// Package game ties the simulation together: the Game aggregate owns the game
// state and its read-only rule table and catalog, and implements the effect
// dispatcher, the damage path, per-turn bookkeeping and the floor lifecycle.
package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/mapgen"
	"github.com/cory-johannsen/ruins/internal/game/populate"
	"github.com/cory-johannsen/ruins/internal/game/present"
	"github.com/cory-johannsen/ruins/internal/game/rules"
	"github.com/cory-johannsen/ruins/internal/game/view"
)

// Target is what an effect or action is aimed at.
type Target interface {
	isTarget()
}

// TargetChara aims at a character.
type TargetChara struct{ ID chara.ID }

// TargetTile aims at a tile of the acting character's map.
type TargetTile struct{ Pos geom.Vec2d }

func (TargetChara) isTarget() {}
func (TargetTile) isTarget()  {}

// Hooks receives scripted-event notifications.
type Hooks interface {
	OnEnterSite(siteName string)
	OnFloorCreated(siteName string, floor int)
}

type noHooks struct{}

func (noHooks) OnEnterSite(string)         {}
func (noHooks) OnFloorCreated(string, int) {}

// Deps are the collaborators a Game is built from.
type Deps struct {
	Rules   *rules.Rules
	Catalog *catalog.Catalog
	// Src is the single random source every draw comes from.
	Src dice.Source
	Log *gamelog.Log
	// Queue receives presentation events. Nil discards them.
	Queue present.Pusher
	// Ledger records generated floors. Nil uses an in-memory ledger.
	Ledger Ledger
	// Hooks receives scripted events. Nil disables them.
	Hooks   Hooks
	Session uuid.UUID
	Logger  *zap.Logger
}

// Game is the simulation aggregate.
// It is not safe for concurrent use; one goroutine must own it.
type Game struct {
	GD      *gamedata.GameData
	Rules   *rules.Rules
	Catalog *catalog.Catalog
	Src     dice.Source
	Roller  *dice.Roller
	Log     *gamelog.Log
	Queue   present.Pusher
	View    *view.View
	Ledger  Ledger
	Hooks   Hooks
	Session uuid.UUID
	Logger  *zap.Logger

	Items     *item.Generator
	Charas    *chara.Generator
	Populator *populate.Populator
	Floors    *mapgen.Generator

	target Target
}

type discardQueue struct{}

func (discardQueue) Push(present.Event) {}

// New creates a Game over gd.
//
// Precondition: d.Rules, d.Catalog, d.Src, d.Log and d.Logger must be non-nil.
// Postcondition: every generator draws from d.Src.
func New(gd *gamedata.GameData, d Deps) *Game {
	roller := dice.NewLoggedRoller(d.Src, d.Logger)
	items := item.NewGenerator(d.Catalog, d.Rules, roller, d.Logger)
	charas := chara.NewGenerator(d.Catalog, d.Rules, roller, items, d.Logger)
	g := &Game{
		GD:        gd,
		Rules:     d.Rules,
		Catalog:   d.Catalog,
		Src:       d.Src,
		Roller:    roller,
		Log:       d.Log,
		Queue:     d.Queue,
		Ledger:    d.Ledger,
		Hooks:     d.Hooks,
		Session:   d.Session,
		Logger:    d.Logger,
		Items:     items,
		Charas:    charas,
		Populator: populate.New(d.Catalog, d.Rules, d.Src, charas, items, d.Logger),
		Floors:    mapgen.NewGenerator(d.Src, d.Logger),
	}
	if g.Queue == nil {
		g.Queue = discardQueue{}
	}
	if g.Ledger == nil {
		g.Ledger = NewMemoryLedger()
	}
	if g.Hooks == nil {
		g.Hooks = noHooks{}
	}
	return g
}

// Target returns the player's current target, or nil.
func (g *Game) Target() Target { return g.target }

// SetTarget records t as the player's current target.
func (g *Game) SetTarget(t Target) { g.target = t }

// ClearTarget forgets the player's current target.
func (g *Game) ClearTarget() { g.target = nil }

// CharaMap returns the map cid is on.
func (g *Game) CharaMap(cid chara.ID) (*gamemap.Map, bool) {
	mid, ok := g.GD.CharaMapID(cid)
	if !ok {
		return nil, false
	}
	return g.GD.Map(mid)
}

// UpdateView recomputes what the player sees and refreshes the observed map.
func (g *Game) UpdateView() {
	m, ok := g.GD.CurrentMap()
	if !ok {
		return
	}
	pos, ok := m.CharaPos(chara.Player)
	if !ok {
		return
	}
	w, h := m.Size()
	if g.View == nil || !sameSize(g.View, w, h) {
		g.View = view.New(w, h)
	}
	g.View.Update(m, pos, g.Rules.Map.ViewRadius)
	populate.UpdateObservedMap(m, g.View, g.Rules.Map.MaxItemForDraw)
}

func sameSize(v *view.View, w, h int) bool {
	vw, vh := v.Size()
	return vw == w && vh == h
}
