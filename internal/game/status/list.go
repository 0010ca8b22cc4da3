package status

import "github.com/cory-johannsen/ruins/internal/game/gamelog"

// List holds a character's active statuses in the order they were applied.
// At most one status of each Kind is present.
// It is not safe for concurrent use; the caller must serialise access.
type List struct {
	items []Status
}

// Add applies s. Re-applying a timed status keeps the longer remaining duration;
// a poison re-application also keeps the higher damage.
//
// Precondition: s must not be nil.
// Postcondition: Has(s.Kind()) is true; insertion order of other statuses is unchanged.
func (l *List) Add(s Status) {
	for i, cur := range l.items {
		if cur.Kind() != s.Kind() {
			continue
		}
		if turnsLeft(s) >= turnsLeft(cur) {
			l.items[i] = mergePoison(s, cur)
		} else {
			l.items[i] = mergePoison(cur, s)
		}
		return
	}
	l.items = append(l.items, s)
}

func mergePoison(keep, other Status) Status {
	p, ok := keep.(Poisoned)
	if !ok {
		return keep
	}
	if o, ok := other.(Poisoned); ok && o.Damage > p.Damage {
		p.Damage = o.Damage
	}
	return p
}

// Remove deletes the status of kind k. No-op when absent.
//
// Postcondition: Has(k) is false.
func (l *List) Remove(k Kind) {
	out := l.items[:0]
	for _, s := range l.items {
		if s.Kind() != k {
			out = append(out, s)
		}
	}
	l.items = out
}

// Has reports whether a status of kind k is active.
func (l *List) Has(k Kind) bool {
	_, ok := l.Get(k)
	return ok
}

// Get returns the active status of kind k.
func (l *List) Get(k Kind) (Status, bool) {
	for _, s := range l.items {
		if s.Kind() == k {
			return s, true
		}
	}
	return nil, false
}

// All returns a copy of the active statuses in application order.
func (l *List) All() []Status {
	out := make([]Status, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of active statuses.
func (l *List) Len() int { return len(l.items) }

// AdvanceTurn advances every status by one turn, then removes those that have
// expired, preserving the order of the survivors.
//
// Postcondition: no status in the list is Expired(); the returned slice holds
// the removed statuses in their former order.
func (l *List) AdvanceTurn() []Status {
	var expired []Status
	out := l.items[:0]
	for _, s := range l.items {
		s = s.Advance(1)
		if s.Expired() {
			expired = append(expired, s)
			continue
		}
		out = append(out, s)
	}
	l.items = out
	return expired
}

// SetSatiety replaces whichever satiety status is active with s, or clears them
// all when s is nil.
func (l *List) SetSatiety(s Status) {
	l.Remove(KindHungry)
	l.Remove(KindWeak)
	l.Remove(KindStarving)
	if s != nil {
		l.Add(s)
	}
}

// CanAct reports whether a character bearing l may act this turn. When a status
// forbids acting, exactly one log entry keyed by the status name is appended.
//
// Postcondition: the log is untouched when true is returned.
func CanAct(l *List, name string, log gamelog.Appender) bool {
	for _, s := range l.items {
		if s.BlocksAction() {
			log.Append(s.Kind().String(), gamelog.A("chara", name))
			return false
		}
	}
	return true
}
