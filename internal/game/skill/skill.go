// Package skill defines character skills and their level/experience tracking.
package skill

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies a skill.
type Kind int

const (
	BareHands Kind = iota
	Sword
	Axe
	Spear
	Bow
	Crossbow
	Gun
	Throwing
	MagicDevice
	Defence
	Evasion
	Endurance
	numKinds
)

var names = [...]string{
	"bare_hands", "sword", "axe", "spear", "bow", "crossbow", "gun",
	"throwing", "magic_device", "defence", "evasion", "endurance",
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return names[k]
	}
	return "unknown"
}

// Parse resolves a skill name.
func Parse(s string) (Kind, error) {
	for i, n := range names {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("skill: unknown skill %q", s)
}

// UnmarshalYAML decodes a skill name.
func (k *Kind) UnmarshalYAML(n *yaml.Node) error {
	v, err := Parse(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*k = v
	return nil
}

// Skills tracks a character's skill levels and the experience accumulated toward
// the next level. The zero value is ready to use.
type Skills struct {
	level [numKinds]int
	exp   [numKinds]int
}

// Get returns the level of k.
func (s *Skills) Get(k Kind) int { return s.level[k] }

// Set sets the level of k and clears its pending experience.
//
// Precondition: lv >= 0.
func (s *Skills) Set(k Kind, lv int) {
	s.level[k] = lv
	s.exp[k] = 0
}

// Exp returns the experience accumulated toward the next level of k.
func (s *Skills) Exp(k Kind) int { return s.exp[k] }

// AddExp adds exp to k and converts every full perLevel into a level.
//
// Precondition: exp >= 0; perLevel > 0.
// Postcondition: 0 <= Exp(k) < perLevel. Returns the number of levels gained.
func (s *Skills) AddExp(k Kind, exp, perLevel int) int {
	s.exp[k] += exp
	gained := s.exp[k] / perLevel
	s.level[k] += gained
	s.exp[k] %= perLevel
	return gained
}
