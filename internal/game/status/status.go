// Package status implements per-character status effects: the ordered list of
// active statuses, per-turn advancement and expiry, and the can-act check.
package status

// Kind identifies a status variant regardless of its duration.
type Kind int

const (
	KindAsleep Kind = iota
	KindPoisoned
	KindHungry
	KindWeak
	KindStarving
)

func (k Kind) String() string {
	switch k {
	case KindAsleep:
		return "asleep"
	case KindPoisoned:
		return "poisoned"
	case KindHungry:
		return "hungry"
	case KindWeak:
		return "weak"
	case KindStarving:
		return "starving"
	}
	return "unknown"
}

// Status is one active status effect. The set of variants is closed.
type Status interface {
	Kind() Kind
	// Advance returns the status after n turns have passed.
	Advance(n int) Status
	// Expired reports whether the status should be removed.
	Expired() bool
	// BlocksAction reports whether the bearer loses its turn.
	BlocksAction() bool
	isStatus()
}

// Asleep prevents the bearer from acting until TurnsLeft reaches zero.
type Asleep struct{ TurnsLeft int }

// Poisoned deals Damage at the start of each of the bearer's turns.
type Poisoned struct {
	TurnsLeft int
	Damage    int
}

// Hungry, Weak and Starving are satiety states. They are derived from SP, are
// never advanced away and are replaced by SetSatiety.
type (
	Hungry   struct{}
	Weak     struct{}
	Starving struct{}
)

func (Asleep) Kind() Kind   { return KindAsleep }
func (Poisoned) Kind() Kind { return KindPoisoned }
func (Hungry) Kind() Kind   { return KindHungry }
func (Weak) Kind() Kind     { return KindWeak }
func (Starving) Kind() Kind { return KindStarving }

func (s Asleep) Advance(n int) Status {
	return Asleep{TurnsLeft: max(s.TurnsLeft-n, 0)}
}

func (s Poisoned) Advance(n int) Status {
	return Poisoned{TurnsLeft: max(s.TurnsLeft-n, 0), Damage: s.Damage}
}

func (s Hungry) Advance(int) Status   { return s }
func (s Weak) Advance(int) Status     { return s }
func (s Starving) Advance(int) Status { return s }

func (s Asleep) Expired() bool   { return s.TurnsLeft <= 0 }
func (s Poisoned) Expired() bool { return s.TurnsLeft <= 0 }
func (Hungry) Expired() bool     { return false }
func (Weak) Expired() bool       { return false }
func (Starving) Expired() bool   { return false }

func (Asleep) BlocksAction() bool   { return true }
func (Poisoned) BlocksAction() bool { return false }
func (Hungry) BlocksAction() bool   { return false }
func (Weak) BlocksAction() bool     { return false }
func (Starving) BlocksAction() bool { return false }

func (Asleep) isStatus()   {}
func (Poisoned) isStatus() {}
func (Hungry) isStatus()   {}
func (Weak) isStatus()     {}
func (Starving) isStatus() {}

func turnsLeft(s Status) int {
	switch v := s.(type) {
	case Asleep:
		return v.TurnsLeft
	case Poisoned:
		return v.TurnsLeft
	}
	return -1
}
