package chara

import "sort"

// Roster owns every character in the game, keyed by ID. Callers look characters
// up by ID each time instead of holding pointers across turns.
// It is not safe for concurrent use; the caller must serialise access.
type Roster struct {
	charas map[ID]*Chara
	nextID ID
}

// NewRoster creates an empty Roster.
//
// Postcondition: Len() == 0.
func NewRoster() *Roster {
	return &Roster{charas: make(map[ID]*Chara), nextID: Player + 1}
}

// SetPlayer installs c as the player character.
//
// Precondition: c must not be nil.
func (r *Roster) SetPlayer(c *Chara) {
	r.charas[Player] = c
}

// Add registers an NPC and returns its newly allocated ID.
//
// Precondition: c must not be nil.
// Postcondition: Get(id) returns c; id is never NoID or Player and is never reused.
func (r *Roster) Add(c *Chara) ID {
	id := r.nextID
	r.nextID++
	r.charas[id] = c
	return id
}

// Get returns the character with id.
func (r *Roster) Get(id ID) (*Chara, bool) {
	c, ok := r.charas[id]
	return c, ok
}

// Remove deletes the character with id. It reports whether it was present.
func (r *Roster) Remove(id ID) bool {
	if _, ok := r.charas[id]; !ok {
		return false
	}
	delete(r.charas, id)
	return true
}

// IDs returns every registered ID in ascending order; the player, if set, is first.
func (r *Roster) IDs() []ID {
	out := make([]ID, 0, len(r.charas))
	for id := range r.charas {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered characters.
func (r *Roster) Len() int { return len(r.charas) }
