package item

// Stack is an item and how many identical copies of it are held.
type Stack struct {
	Item  Item
	Count int
}

// List is an ordered list of item stacks.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: no stack has Count < 1; no two stacks hold Equal items.
type List struct {
	stacks []Stack
}

// Append adds n copies of it, merging into an existing Equal stack.
//
// Precondition: n >= 1.
// Postcondition: Total() increases by n.
func (l *List) Append(it Item, n int) {
	if n < 1 {
		return
	}
	for i := range l.stacks {
		if l.stacks[i].Item.Equal(it) {
			l.stacks[i].Count += n
			return
		}
	}
	l.stacks = append(l.stacks, Stack{Item: it.Clone(), Count: n})
}

// Get returns the stack at index i.
func (l *List) Get(i int) (Stack, bool) {
	if i < 0 || i >= len(l.stacks) {
		return Stack{}, false
	}
	s := l.stacks[i]
	s.Item = s.Item.Clone()
	return s, true
}

// Remove takes n copies out of the stack at index i, deleting the stack when it
// empties. It returns false and leaves the list unchanged when i is out of range
// or the stack holds fewer than n.
//
// Postcondition: on success Total() decreases by exactly n.
func (l *List) Remove(i, n int) bool {
	if i < 0 || i >= len(l.stacks) || n < 1 || l.stacks[i].Count < n {
		return false
	}
	l.stacks[i].Count -= n
	if l.stacks[i].Count == 0 {
		l.stacks = append(l.stacks[:i], l.stacks[i+1:]...)
	}
	return true
}

// RemoveAndGet removes n copies from the stack at index i and returns a copy of
// the removed item.
//
// Postcondition: ok is false and the list is unchanged when Remove would fail.
func (l *List) RemoveAndGet(i, n int) (Item, bool) {
	s, ok := l.Get(i)
	if !ok || !l.Remove(i, n) {
		return Item{}, false
	}
	return s.Item, true
}

// Find returns the index of the first stack whose item has objID.
func (l *List) Find(objID string) (int, bool) {
	for i, s := range l.stacks {
		if s.Item.ObjID == objID {
			return i, true
		}
	}
	return 0, false
}

// CountObj returns how many items with objID the list holds across all stacks.
func (l *List) CountObj(objID string) int {
	n := 0
	for _, s := range l.stacks {
		if s.Item.ObjID == objID {
			n += s.Count
		}
	}
	return n
}

// Len returns the number of stacks.
func (l *List) Len() int { return len(l.stacks) }

// Total returns the number of items across all stacks.
func (l *List) Total() int {
	n := 0
	for _, s := range l.stacks {
		n += s.Count
	}
	return n
}

// Stacks returns a copy of the stacks in order.
func (l *List) Stacks() []Stack {
	out := make([]Stack, len(l.stacks))
	for i, s := range l.stacks {
		out[i] = Stack{Item: s.Item.Clone(), Count: s.Count}
	}
	return out
}
