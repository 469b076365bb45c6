package enemy

import (
	"fmt"
	"math"
	"sort"

	"github.com/peterkuimelis/setrogue/internal/game"
)

// InactivityWarningMs is how long before the penalty the warning fires.
const InactivityWarningMs = 5000

// Inactivity penalties.
const (
	PenaltyDamage = "damage"
	PenaltyDeath  = "death"
)

// --- Inactivity ---

type InactivityState struct {
	TimeSinceMatch float64
	Warned         bool
}

type InactivityConfig struct {
	MaxMs   float64 `yaml:"max_ms"`
	Penalty string  `yaml:"penalty"`
}

var InactivityEffect = Define(Spec[InactivityState, InactivityConfig]{
	Name:        "inactivity",
	Description: "Punishes the player for going too long without a match.",
	OnRoundStart: func(in Input, s *InactivityState, c *InactivityConfig) Result {
		*s = InactivityState{}
		return Result{}
	},
	OnTick: func(in Input, s *InactivityState, c *InactivityConfig) Result {
		var res Result
		s.TimeSinceMatch += in.DeltaMs
		if !s.Warned && s.TimeSinceMatch >= c.MaxMs-InactivityWarningMs {
			s.Warned = true
			res.Events = append(res.Events, Event{Type: EventInactivityWarning, SecondsRemaining: InactivityWarningMs / 1000})
		}
		if s.TimeSinceMatch >= c.MaxMs {
			*s = InactivityState{}
			res.Events = append(res.Events, Event{Type: EventInactivityPenalty, Penalty: c.Penalty})
			if c.Penalty == PenaltyDeath {
				res.InstantDeath = true
			} else {
				res.HealthDelta = -1
			}
		}
		return res
	},
	OnValidMatch: func(in Input, s *InactivityState, c *InactivityConfig) Result {
		*s = InactivityState{}
		return Result{}
	},
	UIModifiers: func(c *InactivityConfig) UIModifiers {
		return UIModifiers{ShowInactivityBar: true, InactivityMaxMs: c.MaxMs}
	},
})

// --- Score decay ---

type ScoreDecayConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second"`
}

var ScoreDecayEffect = Define(Spec[struct{}, ScoreDecayConfig]{
	Name:        "score_decay",
	Description: "Drains score continuously.",
	OnTick: func(in Input, _ *struct{}, c *ScoreDecayConfig) Result {
		return Result{ScoreDelta: -c.RatePerSecond * in.DeltaMs / 1000}
	},
})

// --- Card removal ---

type CardRemovalState struct {
	TimeSinceRemoval float64
}

type CardRemovalConfig struct {
	IntervalMs   float64 `yaml:"interval_ms"`
	MinBoardSize int     `yaml:"min_board_size"`
}

var CardRemovalEffect = Define(Spec[CardRemovalState, CardRemovalConfig]{
	Name:        "card_removal",
	Description: "Periodically takes a card off the board.",
	OnRoundStart: func(in Input, s *CardRemovalState, c *CardRemovalConfig) Result {
		s.TimeSinceRemoval = 0
		return Result{}
	},
	OnTick: func(in Input, s *CardRemovalState, c *CardRemovalConfig) Result {
		s.TimeSinceRemoval += in.DeltaMs
		if s.TimeSinceRemoval < c.IntervalMs {
			return Result{}
		}
		s.TimeSinceRemoval = 0
		if len(in.Board) <= c.MinBoardSize {
			return Result{}
		}
		ids := pickRemovals(in.Board, nil, 1, in.RNG)
		return removalResult(ids, ReasonEnemyEffect)
	},
})

// --- Dud cards ---

type ChanceConfig struct {
	Chance float64 `yaml:"chance"`
}

var DudCardEffect = Define(Spec[struct{}, ChanceConfig]{
	Name:        "dud_cards",
	Description: "New cards may be duds that cannot score.",
	OnCardDraw: func(in Input, _ *struct{}, c *ChanceConfig) Result {
		if in.Card == nil || !game.Roll(in.RNG, c.Chance) {
			return Result{}
		}
		in.Card.IsDud = true
		return Result{Events: []Event{{Type: EventCardDud, CardID: in.Card.ID}}}
	},
})

// --- Face-down cards ---

type FaceDownConfig struct {
	Chance     float64 `yaml:"chance"`
	FlipChance float64 `yaml:"flip_chance"`
}

var FaceDownEffect = Define(Spec[struct{}, FaceDownConfig]{
	Name:        "face_down",
	Description: "New cards may arrive face down; matches can flip them back.",
	OnCardDraw: func(in Input, _ *struct{}, c *FaceDownConfig) Result {
		if in.Card == nil || !game.Roll(in.RNG, c.Chance) {
			return Result{}
		}
		in.Card.IsFaceDown = true
		return Result{Events: []Event{{Type: EventCardFaceDown, CardID: in.Card.ID}}}
	},
	OnValidMatch: func(in Input, _ *struct{}, c *FaceDownConfig) Result {
		var flips []string
		for _, card := range in.Board {
			if card.IsFaceDown && game.Roll(in.RNG, c.FlipChance) {
				flips = append(flips, card.ID)
			}
		}
		if len(flips) == 0 {
			return Result{}
		}
		return Result{
			CardsToFlip: flips,
			Events:      []Event{{Type: EventCardsFlipped, Amount: float64(len(flips))}},
		}
	},
	UIModifiers: func(c *FaceDownConfig) UIModifiers {
		return UIModifiers{FaceDownCards: true}
	},
})

// --- Pure modifiers ---

type MultiplierConfig struct {
	Multiplier float64 `yaml:"multiplier"`
}

var TimerSpeedEffect = Define(Spec[struct{}, MultiplierConfig]{
	Name:        "timer_speed",
	Description: "The round clock runs faster.",
	StatModifiers: func(c *MultiplierConfig) StatModifiers {
		return StatModifiers{TimerSpeedMultiplier: c.Multiplier}
	},
	UIModifiers: func(c *MultiplierConfig) UIModifiers {
		return UIModifiers{TimerSpeedMultiplier: c.Multiplier}
	},
})

var WeaponCounterEffect = Define(Spec[struct{}, WeaponCounter]{
	Name:        "weapon_counter",
	Description: "Weakens one weapon effect.",
	StatModifiers: func(c *WeaponCounter) StatModifiers {
		return StatModifiers{WeaponCounters: []WeaponCounter{*c}}
	},
})

var DamageMultiplierEffect = Define(Spec[struct{}, MultiplierConfig]{
	Name:        "damage_multiplier",
	Description: "Mistakes hurt more.",
	StatModifiers: func(c *MultiplierConfig) StatModifiers {
		return StatModifiers{DamageMultiplier: c.Multiplier}
	},
})

var PointsMultiplierEffect = Define(Spec[struct{}, MultiplierConfig]{
	Name:        "points_multiplier",
	Description: "Scales points earned from matches.",
	StatModifiers: func(c *MultiplierConfig) StatModifiers {
		return StatModifiers{PointsMultiplier: c.Multiplier}
	},
})

var HintDisableEffect = Define(Spec[struct{}, struct{}]{
	Name:        "hint_disable",
	Description: "Hints are unavailable.",
	UIModifiers: func(*struct{}) UIModifiers {
		return UIModifiers{HintsDisabled: true}
	},
})

// --- Position shuffle ---

type IntervalState struct {
	Elapsed float64
}

type IntervalConfig struct {
	IntervalMs float64 `yaml:"interval_ms"`
}

var PositionShuffleEffect = Define(Spec[IntervalState, IntervalConfig]{
	Name:        "position_shuffle",
	Description: "Periodically scrambles card positions.",
	OnRoundStart: func(in Input, s *IntervalState, c *IntervalConfig) Result {
		s.Elapsed = 0
		return Result{}
	},
	OnTick: func(in Input, s *IntervalState, c *IntervalConfig) Result {
		s.Elapsed += in.DeltaMs
		if s.Elapsed < c.IntervalMs {
			return Result{}
		}
		s.Elapsed = 0
		return Result{ShuffleBoard: true, Events: []Event{{Type: EventPositionsShuffled}}}
	},
})

// --- Time steal ---

type AmountConfig struct {
	Amount float64 `yaml:"amount"`
}

var TimeStealEffect = Define(Spec[struct{}, AmountConfig]{
	Name:        "time_steal",
	Description: "Every match costs clock time.",
	OnValidMatch: func(in Input, _ *struct{}, c *AmountConfig) Result {
		return Result{
			TimeDelta: -c.Amount,
			Events:    []Event{{Type: EventTimeStolen, Amount: c.Amount}},
		}
	},
})

// --- Extra removals ---

type ExtraRemovalConfig struct {
	Count        int `yaml:"count"`
	MinBoardSize int `yaml:"min_board_size"`
}

var ExtraCardRemovalOnMatchEffect = Define(Spec[struct{}, ExtraRemovalConfig]{
	Name:        "extra_removal_on_match",
	Description: "Each match takes extra cards with it.",
	OnValidMatch: func(in Input, _ *struct{}, c *ExtraRemovalConfig) Result {
		return extraRemoval(in, c)
	},
})

var ExtraCardRemovalOnInvalidEffect = Define(Spec[struct{}, ExtraRemovalConfig]{
	Name:        "extra_removal_on_invalid",
	Description: "Wrong guesses cost cards.",
	OnInvalidMatch: func(in Input, _ *struct{}, c *ExtraRemovalConfig) Result {
		return extraRemoval(in, c)
	},
})

// extraRemoval removes up to Count cards outside in.Matched, never letting the
// board drop below MinBoardSize. Matched cards are either refilled or stay on
// the board, so they do not count against the minimum.
func extraRemoval(in Input, c *ExtraRemovalConfig) Result {
	n := min(c.Count, len(in.Board)-c.MinBoardSize)
	if n <= 0 {
		return Result{}
	}
	ids := pickRemovals(in.Board, game.IDs(in.Matched), n, in.RNG)
	return removalResult(ids, ReasonEnemyEffect)
}

// --- Bombs ---

type BombConfig struct {
	Chance  float64 `yaml:"chance"`
	TimerMs int     `yaml:"timer_ms"`
}

// BombState holds the fuses armed by one slot, in ms, keyed by card id.
type BombState struct {
	Fuses map[string]float64
}

var BombCardEffect = Define(Spec[BombState, BombConfig]{
	Name:        "bomb_cards",
	Description: "New cards may carry a bomb that hurts the player when it runs out.",
	OnCardDraw: func(in Input, s *BombState, c *BombConfig) Result {
		if in.Card == nil || in.Card.BombTimer > 0 || c.TimerMs <= 0 || !game.Roll(in.RNG, c.Chance) {
			return Result{}
		}
		if s.Fuses == nil {
			s.Fuses = map[string]float64{}
		}
		s.Fuses[in.Card.ID] = float64(c.TimerMs)
		in.Card.BombTimer = c.TimerMs
		return Result{Events: []Event{{Type: EventBombArmed, CardID: in.Card.ID, Amount: float64(c.TimerMs)}}}
	},
	OnTick: func(in Input, s *BombState, _ *BombConfig) Result {
		var res Result
		for _, card := range in.Board {
			fuse, ok := s.Fuses[card.ID]
			if !ok {
				continue
			}
			fuse -= in.DeltaMs
			if fuse > 0 {
				s.Fuses[card.ID] = fuse
				card.BombTimer = int(math.Ceil(fuse))
				continue
			}
			delete(s.Fuses, card.ID)
			card.BombTimer = 0
			res.HealthDelta--
			res.CardsToRemove = append(res.CardsToRemove, card.ID)
			res.Events = append(res.Events, Event{Type: EventBombExploded, CardID: card.ID, Reason: ReasonBomb})
		}
		// Fuses on cards that already left the board are dropped.
		for id := range s.Fuses {
			if in.Board.IndexOf(id) < 0 {
				delete(s.Fuses, id)
			}
		}
		return res
	},
	UIModifiers: func(*BombConfig) UIModifiers {
		return UIModifiers{BombCards: true}
	},
})

// --- Lookup ---

// builtins indexes every behavior by name for catalog decoding.
var builtins = map[string]*Behavior{}

func init() {
	for _, b := range []*Behavior{
		InactivityEffect,
		ScoreDecayEffect,
		CardRemovalEffect,
		DudCardEffect,
		FaceDownEffect,
		TimerSpeedEffect,
		WeaponCounterEffect,
		DamageMultiplierEffect,
		PointsMultiplierEffect,
		HintDisableEffect,
		PositionShuffleEffect,
		TimeStealEffect,
		ExtraCardRemovalOnMatchEffect,
		ExtraCardRemovalOnInvalidEffect,
		BombCardEffect,
	} {
		builtins[b.Name] = b
	}
}

// LookupBehavior returns the built-in behavior with the given name.
func LookupBehavior(name string) (*Behavior, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBehavior, name)
	}
	return b, nil
}

// BehaviorNames lists every built-in behavior name, sorted.
func BehaviorNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- helpers ---

// pickRemovals chooses up to n distinct random cards, skipping selected cards
// and any id in exclude.
func pickRemovals(board game.Board, exclude []string, n int, rng game.RNG) []string {
	skip := game.IDSet(exclude)
	pool := make([]*game.Card, 0, len(board))
	for _, c := range board {
		if _, ok := skip[c.ID]; ok || c.Selected {
			continue
		}
		pool = append(pool, c)
	}
	var ids []string
	for i := 0; i < n && len(pool) > 0; i++ {
		j := rng.Intn(len(pool))
		ids = append(ids, pool[j].ID)
		pool = append(pool[:j], pool[j+1:]...)
	}
	return ids
}

func removalResult(ids []string, reason string) Result {
	res := Result{CardsToRemove: ids}
	for _, id := range ids {
		res.Events = append(res.Events, Event{Type: EventCardRemoved, CardID: id, Reason: reason})
	}
	return res
}
