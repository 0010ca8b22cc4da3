// Package chara models characters: attributes, skills, equipment, inventory,
// satiety and statuses, together with the power model, the character roster and
// NPC creation from templates.
package chara

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/rules"
	"github.com/cory-johannsen/ruins/internal/game/skill"
	"github.com/cory-johannsen/ruins/internal/game/status"
)

// ID identifies a character. NoID means "no character".
type ID uint32

const (
	NoID   ID = 0
	Player ID = 1
)

// IsPlayer reports whether id is the player.
func (id ID) IsPlayer() bool { return id == Player }

func (id ID) String() string {
	switch id {
	case NoID:
		return "none"
	case Player:
		return "player"
	}
	return fmt.Sprintf("npc#%d", uint32(id))
}

type slotKey struct {
	slot catalog.EquipSlot
	n    int
}

// Equip holds equipped items keyed by slot and sub-index.
type Equip struct {
	slots map[slotKey]item.Item
}

// Item returns the item equipped in slot at sub-index n.
func (e *Equip) Item(slot catalog.EquipSlot, n int) (item.Item, bool) {
	it, ok := e.slots[slotKey{slot, n}]
	if !ok {
		return item.Item{}, false
	}
	return it.Clone(), true
}

// Set equips it in slot at sub-index n and returns whatever was there before.
func (e *Equip) Set(slot catalog.EquipSlot, n int, it item.Item) (item.Item, bool) {
	if e.slots == nil {
		e.slots = make(map[slotKey]item.Item)
	}
	prev, had := e.slots[slotKey{slot, n}]
	e.slots[slotKey{slot, n}] = it.Clone()
	return prev, had
}

// Unset removes and returns the item in slot at sub-index n.
func (e *Equip) Unset(slot catalog.EquipSlot, n int) (item.Item, bool) {
	prev, had := e.slots[slotKey{slot, n}]
	delete(e.slots, slotKey{slot, n})
	return prev, had
}

// Items returns every equipped item ordered by slot then sub-index.
func (e *Equip) Items() []item.Item {
	keys := make([]slotKey, 0, len(e.slots))
	for k := range e.slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].slot != keys[j].slot {
			return keys[i].slot < keys[j].slot
		}
		return keys[i].n < keys[j].n
	})
	out := make([]item.Item, len(keys))
	for i, k := range keys {
		out[i] = e.slots[k].Clone()
	}
	return out
}

// Chara is one character.
// It is not safe for concurrent use; the caller must serialise access.
type Chara struct {
	Name       string
	TemplateID string
	Faction    string
	Level      int
	// BaseAttr is the attribute set before satiety penalties; Attr is derived by Update.
	BaseAttr catalog.Attributes
	Attr     catalog.Attributes
	Skills   skill.Skills
	Equip    Equip
	Items    item.List
	Status   status.List
	HP       int
	MaxHP    int
	SP       int
	MaxSP    int
	// BaseHP is the template's rolled hit points before vitality is added.
	BaseHP int
	Dead   bool
}

// Update recomputes derived values: satiety status from SP, attributes from
// BaseAttr and satiety, and MaxHP from vitality. HP is clamped to MaxHP.
//
// Postcondition: 1 <= MaxHP; HP <= MaxHP; at most one satiety status is active.
func (c *Chara) Update(r *rules.Rules) {
	switch {
	case c.SP < r.Chara.SPStarving:
		c.Status.SetSatiety(status.Starving{})
	case c.SP < r.Chara.SPWeak:
		c.Status.SetSatiety(status.Weak{})
	case c.SP < r.Chara.SPHungry:
		c.Status.SetSatiety(status.Hungry{})
	default:
		c.Status.SetSatiety(nil)
	}

	c.Attr = c.BaseAttr
	switch {
	case c.Status.Has(status.KindStarving):
		c.Attr.Str = max(c.Attr.Str/2, 1)
		c.Attr.Dex = max(c.Attr.Dex/2, 1)
	case c.Status.Has(status.KindWeak):
		c.Attr.Str = max(c.Attr.Str*3/4, 1)
		c.Attr.Dex = max(c.Attr.Dex*3/4, 1)
	}

	c.MaxHP = max(c.BaseHP+c.Attr.Vit*r.Chara.HPPerVit, 1)
	c.HP = min(c.HP, c.MaxHP)
	c.MaxSP = r.Chara.SPMax
}

// AddSP changes satiety by v, capped at MaxSP. When SP is below the starving
// threshold afterwards, the starvation damage the character should take is
// returned; otherwise damage is 0. Callers route the damage through the game's
// damage path.
//
// Postcondition: SP <= MaxSP; damage >= 0.
func (c *Chara) AddSP(v int, r *rules.Rules) (damage int) {
	c.SP = min(c.SP+v, c.MaxSP)
	if c.SP >= r.Chara.SPStarving {
		return 0
	}
	return max(int(float64(r.Chara.SPStarving-c.SP)*r.Chara.SPStarvingDamageFactor), 1)
}

// AddAttackExp grants experience in sk for attacking a character of targetLevel.
// Higher-level targets and lower skill levels yield more experience.
//
// Postcondition: returns the number of levels gained.
func (c *Chara) AddAttackExp(sk skill.Kind, targetLevel int, r *rules.Rules) int {
	gain := max(r.Exp.Attack*(targetLevel+1)/(c.Skills.Get(sk)+1), 1)
	return c.Skills.AddExp(sk, gain, r.Exp.PerLevel)
}
