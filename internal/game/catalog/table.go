package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownObject is returned when a definition id is not in the catalog.
var ErrUnknownObject = errors.New("catalog: unknown object")

// Def is implemented by every catalog definition.
type Def interface {
	DefID() string
	Validate() error
}

// Table holds the definitions of one object type keyed by id.
type Table[T Def] struct {
	name string
	defs map[string]T
	ids  []string
}

func newTable[T Def](name string) *Table[T] {
	return &Table[T]{name: name, defs: make(map[string]T)}
}

// Register validates and adds d.
//
// Postcondition: Get(d.DefID()) returns d; returns an error if d is invalid or
// its id is already registered.
func (t *Table[T]) Register(d T) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("catalog: %s %q: %w", t.name, d.DefID(), err)
	}
	if _, exists := t.defs[d.DefID()]; exists {
		return fmt.Errorf("catalog: %s id %q already registered", t.name, d.DefID())
	}
	t.defs[d.DefID()] = d
	t.ids = append(t.ids, d.DefID())
	sort.Strings(t.ids)
	return nil
}

// Get returns the definition for id.
//
// Postcondition: ok is true iff id is registered.
func (t *Table[T]) Get(id string) (T, bool) {
	d, ok := t.defs[id]
	return d, ok
}

// Lookup returns the definition for id or an error wrapping ErrUnknownObject.
func (t *Table[T]) Lookup(id string) (T, error) {
	d, ok := t.defs[id]
	if !ok {
		return d, fmt.Errorf("%w: %s %q", ErrUnknownObject, t.name, id)
	}
	return d, nil
}

// MustGet returns the definition for id. A missing id means content references an
// object that was never defined, which cannot be recovered from at run time, so
// MustGet panics.
func (t *Table[T]) MustGet(id string) T {
	d, ok := t.defs[id]
	if !ok {
		panic(fmt.Sprintf("catalog: %s %q is not defined", t.name, id))
	}
	return d
}

// IDs returns every registered id in lexical order.
func (t *Table[T]) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Len returns the number of registered definitions.
func (t *Table[T]) Len() int { return len(t.defs) }
