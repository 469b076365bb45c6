package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging round events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// clock renders milliseconds as m:ss.t.
func clock(ms float64) string {
	if ms < 0 {
		ms = 0
	}
	tenths := int(ms / 100)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	// Pad type to 14 chars for alignment
	for len(kind) < 14 {
		kind += " "
	}
	return fmt.Sprintf("R%-2d %8s %s| %s", e.Round, clock(e.ElapsedMs), kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---
// Round and ElapsedMs are stamped by the round driver.

func NewRoundStartEvent(enemy string, boardSize int) GameEvent {
	return GameEvent{
		Type:    EventRoundStart,
		Details: fmt.Sprintf("=== Round vs %s (%d cards) ===", enemy, boardSize),
	}
}

func NewDrawEvent(cardID, desc string) GameEvent {
	return GameEvent{
		Type:    EventDraw,
		Card:    cardID,
		Details: fmt.Sprintf("draws %s", desc),
	}
}

func NewMatchEvent(ids []string, points float64) GameEvent {
	return GameEvent{
		Type:    EventMatch,
		Details: fmt.Sprintf("matches %s (+%g)", strings.Join(ids, ", "), points),
	}
}

func NewInvalidMatchEvent(ids []string, invalid []string, reason string) GameEvent {
	d := fmt.Sprintf("%s: %s", reason, strings.Join(ids, ", "))
	if len(invalid) > 0 {
		d += fmt.Sprintf(" (%s)", strings.Join(invalid, ", "))
	}
	return GameEvent{
		Type:    EventInvalidMatch,
		Details: d,
	}
}

func NewGraceUsedEvent(attr string, remaining int) GameEvent {
	return GameEvent{
		Type:    EventGraceUsed,
		Details: fmt.Sprintf("grace forgives %s (%d left)", attr, remaining),
	}
}

func NewHintEvent(ids []string) GameEvent {
	return GameEvent{
		Type:    EventHint,
		Details: fmt.Sprintf("hint: %s", strings.Join(ids, ", ")),
	}
}

// NewWeaponEvent records a destructive weapon effect hitting cards.
func NewWeaponEvent(t EventType, ids []string) GameEvent {
	return GameEvent{
		Type:    t,
		Details: fmt.Sprintf("%s hits %s", strings.ToLower(t.String()), strings.Join(ids, ", ")),
	}
}

func NewBurnEvent(ids []string, points float64) GameEvent {
	return GameEvent{
		Type:    EventBurn,
		Details: fmt.Sprintf("%s burn away (+%g)", strings.Join(ids, ", "), points),
	}
}

func NewEchoEvent(ids []string) GameEvent {
	return GameEvent{
		Type:    EventEcho,
		Details: fmt.Sprintf("echo matches %s", strings.Join(ids, ", ")),
	}
}

func NewBonusEvent(note string) GameEvent {
	return GameEvent{
		Type:    EventBonus,
		Details: note,
	}
}

func NewEnemyEffectEvent(enemy, kind, cardID, details string) GameEvent {
	d := fmt.Sprintf("%s: %s", enemy, kind)
	if details != "" {
		d += " " + details
	}
	return GameEvent{
		Type:    EventEnemyEffect,
		Card:    cardID,
		Details: d,
	}
}

func NewCardRemovedEvent(cardID, reason string) GameEvent {
	return GameEvent{
		Type:    EventCardRemoved,
		Card:    cardID,
		Details: fmt.Sprintf("%s is removed (%s)", cardID, reason),
	}
}

func NewCardsFlippedEvent(ids []string) GameEvent {
	return GameEvent{
		Type:    EventCardsFlipped,
		Details: fmt.Sprintf("%s flip face up", strings.Join(ids, ", ")),
	}
}

func NewShuffleEvent() GameEvent {
	return GameEvent{
		Type:    EventShuffle,
		Details: "board positions shuffled",
	}
}

func NewBombEvent(cardID string) GameEvent {
	return GameEvent{
		Type:    EventBomb,
		Card:    cardID,
		Details: fmt.Sprintf("bomb on %s explodes", cardID),
	}
}

func NewHealthChangeEvent(oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Type:    EventHealthChange,
		Details: fmt.Sprintf("Health: %d → %d (%s)", oldHP, newHP, reason),
	}
}

func NewScoreChangeEvent(oldScore, newScore float64, reason string) GameEvent {
	return GameEvent{
		Type:    EventScoreChange,
		Details: fmt.Sprintf("Score: %.1f → %.1f (%s)", oldScore, newScore, reason),
	}
}

func NewTimeChangeEvent(deltaSec float64, reason string) GameEvent {
	return GameEvent{
		Type:    EventTimeChange,
		Details: fmt.Sprintf("Time %+gs (%s)", deltaSec, reason),
	}
}

func NewEnemyDefeatedEvent(enemy string) GameEvent {
	return GameEvent{
		Type:    EventEnemyDefeated,
		Details: fmt.Sprintf("%s is defeated!", enemy),
	}
}

func NewRoundOverEvent(won bool, reason string) GameEvent {
	outcome := "lost"
	if won {
		outcome = "won"
	}
	return GameEvent{
		Type:    EventRoundOver,
		Details: fmt.Sprintf("Round %s (%s)", outcome, reason),
	}
}
