// Package action resolves character intents: movement, melee and ranged attacks,
// throwing, drinking, eating and releasing charged devices. Every resolver
// validates its preconditions, computes power and delegates to the game's
// effect dispatcher.
package action

import (
	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/geom"
)

// Intent is what a character wants to do this turn. The set of variants is closed.
type Intent interface {
	isIntent()
}

// Move steps one tile in Dir.
type Move struct{ Dir geom.Direction }

// Melee attacks an adjacent character.
type Melee struct{ Target chara.ID }

// Shoot attacks a character with the equipped ranged weapon.
type Shoot struct{ Target chara.ID }

// Throw throws one item from Loc at Target.
type Throw struct {
	Loc    gamedata.ItemLocation
	Target game.Target
}

// Drink drinks one item from Loc.
type Drink struct{ Loc gamedata.ItemLocation }

// Eat eats one item from Loc.
type Eat struct{ Loc gamedata.ItemLocation }

// Release spends one charge of the device at Loc on Target.
type Release struct {
	Loc    gamedata.ItemLocation
	Target game.Target
}

// Wait passes the turn.
type Wait struct{}

func (Move) isIntent()    {}
func (Melee) isIntent()   {}
func (Shoot) isIntent()   {}
func (Throw) isIntent()   {}
func (Drink) isIntent()   {}
func (Eat) isIntent()     {}
func (Release) isIntent() {}
func (Wait) isIntent()    {}

// Resolve carries out in for cid.
//
// Postcondition: returns false when a precondition failed; the caller decides
// whether the failed attempt still ends the turn.
func Resolve(g *game.Game, cid chara.ID, in Intent) bool {
	switch in := in.(type) {
	case Move:
		return TryMove(g, cid, in.Dir)
	case Melee:
		return MeleeAttack(g, cid, in.Target)
	case Shoot:
		return ShootTarget(g, cid, in.Target)
	case Throw:
		return ThrowItem(g, in.Loc, cid, in.Target)
	case Drink:
		return DrinkItem(g, in.Loc, cid)
	case Eat:
		return EatItem(g, in.Loc, cid)
	case Release:
		return ReleaseItem(g, in.Loc, cid, in.Target)
	case Wait:
		return true
	default:
		return false
	}
}
