package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLogger_SequenceAndFilter(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewRoundStartEvent("Sloth", 12))
	l.Log(NewMatchEvent([]string{"c1", "c2", "c3"}, 3))
	l.Log(NewMatchEvent([]string{"c4", "c5", "c6"}, 3))

	require.Len(t, l.Events(), 3)
	assert.Equal(t, 3, l.LastEvent().Seq)
	assert.Len(t, l.EventsOfType(EventMatch), 2)
	assert.Empty(t, l.EventsOfType(EventBomb))
	assert.Equal(t, GameEvent{}, NewMemoryLogger().LastEvent())
}

func TestTextLogger_WritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	ev := NewHealthChangeEvent(3, 2, "bomb")
	ev.Round = 1
	ev.ElapsedMs = 65400
	l.Log(ev)

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, "R1    1:05.4 HealthChange  | Health: 3 → 2 (bomb)", line)
	assert.Len(t, l.Events(), 1)
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]GameEvent{NewShuffleEvent(), NewRoundOverEvent(true, "enemy defeated")})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Round won (enemy defeated)")
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "EnemyDefeated", EventEnemyDefeated.String())
	assert.Equal(t, "Unknown", EventType(999).String())
}
