package enemy

import (
	"github.com/google/uuid"

	"github.com/peterkuimelis/setrogue/internal/game"
)

// Meta is the display metadata of an enemy.
type Meta struct {
	Name        string `yaml:"name" json:"name"`
	Tier        int    `yaml:"tier" json:"tier"`
	Description string `yaml:"description" json:"description"`
}

// Instance is one live enemy: a list of behavior slots, each owning its own
// state record, plus the defeat predicate. Instances are created per round and
// never shared.
type Instance struct {
	ID string
	Meta

	slots  []Slot
	states []any
	defeat DefeatCondition
}

// Compose builds an Instance from behavior slots. A nil defeat condition uses
// DefaultDefeatCondition.
func Compose(meta Meta, slots []Slot, defeat DefeatCondition) *Instance {
	inst := &Instance{
		ID:     uuid.NewString(),
		Meta:   meta,
		slots:  make([]Slot, len(slots)),
		states: make([]any, len(slots)),
		defeat: defeat,
	}
	copy(inst.slots, slots)
	for i, s := range slots {
		if s.Behavior != nil && s.Behavior.NewState != nil {
			inst.states[i] = s.Behavior.NewState()
		}
	}
	if inst.defeat == nil {
		inst.defeat = DefaultDefeatCondition
	}
	return inst
}

// Slots returns the behavior slots in registration order.
func (e *Instance) Slots() []Slot { return e.slots }

// SlotState returns the state record owned by slot i, or nil.
func (e *Instance) SlotState(i int) any {
	if i < 0 || i >= len(e.states) {
		return nil
	}
	return e.states[i]
}

// BehaviorNames lists the behaviors of the enemy in order.
func (e *Instance) BehaviorNames() []string {
	names := make([]string, 0, len(e.slots))
	for _, s := range e.slots {
		if s.Behavior != nil {
			names = append(names, s.Behavior.Name)
		}
	}
	return names
}

func (e *Instance) OnRoundStart(board game.Board, rng game.RNG) Result {
	return e.run(func(b *Behavior) Hook { return b.OnRoundStart }, Input{Board: board, RNG: rng})
}

func (e *Instance) OnCardDraw(card *game.Card, board game.Board, rng game.RNG) Result {
	return e.run(func(b *Behavior) Hook { return b.OnCardDraw }, Input{Board: board, Card: card, RNG: rng})
}

func (e *Instance) OnTick(deltaMs float64, board game.Board, rng game.RNG) Result {
	return e.run(func(b *Behavior) Hook { return b.OnTick }, Input{Board: board, DeltaMs: deltaMs, RNG: rng})
}

func (e *Instance) OnValidMatch(matched []*game.Card, board game.Board, rng game.RNG) Result {
	return e.run(func(b *Behavior) Hook { return b.OnValidMatch }, Input{Board: board, Matched: matched, RNG: rng})
}

func (e *Instance) OnInvalidMatch(selected []*game.Card, board game.Board, rng game.RNG) Result {
	return e.run(func(b *Behavior) Hook { return b.OnInvalidMatch }, Input{Board: board, Matched: selected, RNG: rng})
}

// run invokes one hook on every slot that defines it, in order, and merges.
func (e *Instance) run(pick func(*Behavior) Hook, in Input) Result {
	var res Result
	for i, s := range e.slots {
		if s.Behavior == nil {
			continue
		}
		hook := pick(s.Behavior)
		if hook == nil {
			continue
		}
		res = res.Merge(hook(in, e.states[i], s.Config))
	}
	return res
}

// StatModifiers merges the stat modifiers of every slot in order.
func (e *Instance) StatModifiers() StatModifiers {
	var m StatModifiers
	for _, s := range e.slots {
		if s.Behavior != nil && s.Behavior.StatModifiers != nil {
			m = m.Merge(s.Behavior.StatModifiers(s.Config))
		}
	}
	return m
}

// UIModifiers merges the UI modifiers of every slot in order.
func (e *Instance) UIModifiers() UIModifiers {
	var m UIModifiers
	for _, s := range e.slots {
		if s.Behavior != nil && s.Behavior.UIModifiers != nil {
			m = m.Merge(s.Behavior.UIModifiers(s.Config))
		}
	}
	return m
}

// CheckDefeatCondition reports whether stats satisfy the enemy's defeat predicate.
func (e *Instance) CheckDefeatCondition(stats RoundStats) bool {
	return e.defeat(stats)
}
