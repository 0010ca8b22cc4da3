// Package gamelog is the in-game message log. Entries are message keys plus named
// arguments; turning them into localized text is the presentation layer's job.
package gamelog

import (
	"strings"

	"go.uber.org/zap"
)

// Arg is one named argument of a log entry.
type Arg struct {
	Name  string
	Value string
}

// A builds an Arg.
func A(name, value string) Arg { return Arg{Name: name, Value: value} }

// Entry is one message in the log.
type Entry struct {
	Key  string
	Args []Arg
}

// Arg returns the value of the named argument, or "" if absent.
func (e Entry) Arg(name string) string {
	for _, a := range e.Args {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// String renders the entry as "key name=value ..." for logs and tests.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Key)
	for _, a := range e.Args {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	return b.String()
}

// Appender is the write side of the log, as consumed by the simulation.
type Appender interface {
	Append(key string, args ...Arg)
}

// Log is a bounded message log. When full, the oldest entry is dropped.
// It is not safe for concurrent use; the caller must serialise access.
type Log struct {
	capacity int
	entries  []Entry
	logger   *zap.Logger
}

// New creates a Log retaining at most capacity entries, mirroring each entry to
// logger at debug level.
//
// Precondition: capacity >= 1; logger must be non-nil.
func New(capacity int, logger *zap.Logger) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{capacity: capacity, logger: logger}
}

// Append adds an entry.
//
// Postcondition: Last() returns the new entry; Len() <= capacity.
func (l *Log) Append(key string, args ...Arg) {
	e := Entry{Key: key, Args: args}
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
	l.logger.Debug("game log", zap.Stringer("entry", e))
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of the retained entries, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the newest entry and true, or false when the log is empty.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Count returns how many retained entries carry key.
func (l *Log) Count(key string) int {
	n := 0
	for _, e := range l.entries {
		if e.Key == key {
			n++
		}
	}
	return n
}
