package gamelog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/ruins/internal/game/gamelog"
)

func TestLog_AppendAndLast(t *testing.T) {
	l := gamelog.New(4, zap.NewNop())
	_, ok := l.Last()
	assert.False(t, ok)

	l.Append("asleep", gamelog.A("chara", "Kobold"))
	e, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, "asleep", e.Key)
	assert.Equal(t, "Kobold", e.Arg("chara"))
	assert.Equal(t, "", e.Arg("missing"))
	assert.Equal(t, "asleep chara=Kobold", e.String())
}

func TestLog_DropsOldestWhenFull(t *testing.T) {
	l := gamelog.New(2, zap.NewNop())
	l.Append("a")
	l.Append("b")
	l.Append("c")
	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Key)
	assert.Equal(t, "c", entries[1].Key)
}

func TestLog_Count(t *testing.T) {
	l := gamelog.New(10, zap.NewNop())
	l.Append("asleep")
	l.Append("eat-item")
	l.Append("asleep")
	assert.Equal(t, 2, l.Count("asleep"))
	assert.Equal(t, 0, l.Count("drink-item"))
}

func TestLog_NeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(rt, "capacity")
		n := rapid.IntRange(0, 64).Draw(rt, "n")
		l := gamelog.New(capacity, zap.NewNop())
		for i := 0; i < n; i++ {
			l.Append("k")
		}
		assert.Equal(rt, min(n, capacity), l.Len())
	})
}
