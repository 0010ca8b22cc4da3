// Package effect describes what an attack, thrown object, potion or device does:
// the kinds of effect it carries, whom it may target, the area it covers and the
// presentation hints that accompany it. Effects are plain values; applying them
// is the dispatcher's job.
package effect

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/ruins/internal/game/status"
)

// Element is the damage element of an attack.
type Element int

const (
	Physical Element = iota
	Fire
	Cold
	Shock
	Poison
	Spirit
)

var elementNames = []string{"physical", "fire", "cold", "shock", "poison", "spirit"}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return "unknown"
}

// ParseElement resolves an element name. An empty name is Physical.
func ParseElement(s string) (Element, error) {
	if s == "" {
		return Physical, nil
	}
	for i, n := range elementNames {
		if strings.EqualFold(s, n) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("effect: unknown element %q", s)
}

// Kind is one thing an effect does. The set of variants is closed.
type Kind interface {
	isKind()
}

// Melee is a close-range attack that must pass a hit roll.
type Melee struct{ Element Element }

// Ranged is a missile attack that must pass a hit roll.
type Ranged struct{ Element Element }

// Explosion is an area attack that must pass a hit roll per character.
type Explosion struct{ Element Element }

// Direct damages without a hit roll.
type Direct struct{ Element Element }

// Heal restores HP.
type Heal struct{}

// ApplyStatus inflicts a timed status. Only timed statuses are meaningful.
type ApplyStatus struct{ Status status.Kind }

// RestoreSP restores satiety.
type RestoreSP struct{}

func (Melee) isKind()       {}
func (Ranged) isKind()      {}
func (Explosion) isKind()   {}
func (Direct) isKind()      {}
func (Heal) isKind()        {}
func (ApplyStatus) isKind() {}
func (RestoreSP) isKind()   {}

// TargetMode restricts which characters an effect may be aimed at.
type TargetMode int

const (
	TargetNone TargetMode = iota
	TargetAny
	TargetEnemy
	TargetAlly
	TargetSelf
)

// Shape is the area an effect covers around its target.
type Shape int

const (
	// OneTile affects only the target tile.
	OneTile Shape = iota
	// Line affects every tile from the cause to the target, up to Range.
	Line
	// Circle affects every tile within Size of the target.
	Circle
)

// AnimKind selects how the effect is animated.
type AnimKind int

const (
	AnimNone AnimKind = iota
	AnimChara
	AnimShot
)

// Effect is the declarative description of an effect.
type Effect struct {
	Kinds      []Kind
	TargetMode TargetMode
	// PowerAdjust multiplies power per kind, by index. Missing entries are 1.
	PowerAdjust []float64
	Range       int
	Shape       Shape
	Size        int
	AnimKind    AnimKind
	AnimImg     string
	AnimImgShot string
	Sound       string
}

// Adjust returns the power multiplier for the i-th kind.
func (e Effect) Adjust(i int) float64 {
	if i < len(e.PowerAdjust) {
		return e.PowerAdjust[i]
	}
	return 1
}

// IsEmpty reports whether the effect does nothing.
func (e Effect) IsEmpty() bool { return len(e.Kinds) == 0 }

// BareHands is the effect of an unarmed melee attack.
func BareHands() Effect {
	return Effect{
		Kinds:      []Kind{Melee{Element: Physical}},
		TargetMode: TargetEnemy,
		Range:      1,
		Shape:      OneTile,
		Size:       0,
		AnimKind:   AnimChara,
		AnimImg:    "!damage-blunt",
		Sound:      "punch",
	}
}
