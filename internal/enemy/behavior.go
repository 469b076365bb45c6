// Package enemy composes independent stateful effect behaviors into enemies.
package enemy

import "github.com/peterkuimelis/setrogue/internal/game"

// Input carries the hook arguments. Only the fields relevant to a hook are set.
type Input struct {
	Board   game.Board
	Card    *game.Card   // OnCardDraw
	Matched []*game.Card // OnValidMatch, OnInvalidMatch
	DeltaMs float64      // OnTick
	RNG     game.RNG
}

// Hook is the untyped form of a behavior hook. state and config are the
// slot's own records.
type Hook func(in Input, state, config any) Result

// Behavior is a capability record: every hook is optional and a nil hook
// means the behavior does not take part in that event.
type Behavior struct {
	Name        string
	Description string

	NewState  func() any // allocates a fresh state record for one slot
	NewConfig func() any // allocates a zero config, used when decoding catalogs

	OnRoundStart   Hook
	OnCardDraw     Hook
	OnTick         Hook
	OnValidMatch   Hook
	OnInvalidMatch Hook

	StatModifiers func(config any) StatModifiers
	UIModifiers   func(config any) UIModifiers
}

// Spec declares a behavior with typed state S and config C.
type Spec[S, C any] struct {
	Name        string
	Description string

	OnRoundStart   func(in Input, s *S, c *C) Result
	OnCardDraw     func(in Input, s *S, c *C) Result
	OnTick         func(in Input, s *S, c *C) Result
	OnValidMatch   func(in Input, s *S, c *C) Result
	OnInvalidMatch func(in Input, s *S, c *C) Result

	StatModifiers func(c *C) StatModifiers
	UIModifiers   func(c *C) UIModifiers
}

// Define turns a typed Spec into a Behavior. Hooks left nil stay nil.
func Define[S, C any](spec Spec[S, C]) *Behavior {
	b := &Behavior{
		Name:        spec.Name,
		Description: spec.Description,
		NewState:    func() any { return new(S) },
		NewConfig:   func() any { return new(C) },

		OnRoundStart:   wrapHook(spec.OnRoundStart),
		OnCardDraw:     wrapHook(spec.OnCardDraw),
		OnTick:         wrapHook(spec.OnTick),
		OnValidMatch:   wrapHook(spec.OnValidMatch),
		OnInvalidMatch: wrapHook(spec.OnInvalidMatch),
	}
	if f := spec.StatModifiers; f != nil {
		b.StatModifiers = func(config any) StatModifiers { return f(typedConfig[C](config)) }
	}
	if f := spec.UIModifiers; f != nil {
		b.UIModifiers = func(config any) UIModifiers { return f(typedConfig[C](config)) }
	}
	return b
}

func wrapHook[S, C any](f func(Input, *S, *C) Result) Hook {
	if f == nil {
		return nil
	}
	return func(in Input, state, config any) Result {
		s, _ := state.(*S)
		if s == nil {
			s = new(S)
		}
		return f(in, s, typedConfig[C](config))
	}
}

// typedConfig accepts either *C or C and falls back to the zero config.
func typedConfig[C any](config any) *C {
	switch c := config.(type) {
	case *C:
		if c != nil {
			return c
		}
	case C:
		return &c
	}
	return new(C)
}

// Slot pairs a behavior with its externally supplied config.
type Slot struct {
	Behavior *Behavior
	Config   any
}

// --- Hook results ---

// Event types emitted by behaviors.
const (
	EventInactivityWarning = "inactivity_warning"
	EventInactivityPenalty = "inactivity_penalty"
	EventCardRemoved       = "card_removed"
	EventCardDud           = "card_dud"
	EventCardFaceDown      = "card_face_down"
	EventCardsFlipped      = "cards_flipped"
	EventPositionsShuffled = "positions_shuffled"
	EventTimeStolen        = "time_stolen"
	EventBombArmed         = "bomb_armed"
	EventBombExploded      = "bomb_exploded"
)

// Removal reasons.
const (
	ReasonEnemyEffect = "enemy_effect"
	ReasonBomb        = "bomb"
)

// Event is a notification raised by a behavior.
type Event struct {
	Type             string
	CardID           string
	Reason           string
	Penalty          string
	SecondsRemaining int
	Amount           float64
}

// Result is the partial outcome of one hook. The composer merges the results
// of every behavior into one.
type Result struct {
	HealthDelta int
	ScoreDelta  float64
	TimeDelta   float64 // seconds

	CardsToRemove []string
	CardsToFlip   []string
	Events        []Event

	InstantDeath bool
	ShuffleBoard bool

	// PointsMultiplier is an override: zero means unset and the last
	// behavior to set it wins.
	PointsMultiplier float64
}

// Merge folds next into r: numbers sum, lists concatenate with id lists
// deduplicated, flags OR, overrides take the later value.
func (r Result) Merge(next Result) Result {
	r.HealthDelta += next.HealthDelta
	r.ScoreDelta += next.ScoreDelta
	r.TimeDelta += next.TimeDelta
	r.CardsToRemove = appendUnique(r.CardsToRemove, next.CardsToRemove)
	r.CardsToFlip = appendUnique(r.CardsToFlip, next.CardsToFlip)
	r.Events = append(r.Events, next.Events...)
	r.InstantDeath = r.InstantDeath || next.InstantDeath
	r.ShuffleBoard = r.ShuffleBoard || next.ShuffleBoard
	if next.PointsMultiplier != 0 {
		r.PointsMultiplier = next.PointsMultiplier
	}
	return r
}

// EventsOfType returns the events with the given type.
func (r Result) EventsOfType(t string) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func appendUnique(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := game.IDSet(dst)
	for _, id := range src {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		dst = append(dst, id)
	}
	return dst
}
