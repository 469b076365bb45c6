// Package gametest provides deterministic doubles for driving the rule engines in tests.
package gametest

import (
	"fmt"

	"github.com/peterkuimelis/setrogue/internal/game"
)

// ScriptedRNG replays predefined draws. Once a script is exhausted Float64
// returns Fallback (0.999 by default, so rolls fail) and Intn returns 0.
type ScriptedRNG struct {
	Floats   []float64
	Ints     []int
	Fallback float64

	floatPos int
	intPos   int
}

// NewScriptedRNG creates an RNG that returns floats in order.
func NewScriptedRNG(floats ...float64) *ScriptedRNG {
	return &ScriptedRNG{Floats: floats, Fallback: 0.999}
}

// AlwaysRNG returns an RNG whose every float draw is v.
func AlwaysRNG(v float64) *ScriptedRNG {
	return &ScriptedRNG{Fallback: v}
}

// WithInts queues Intn results.
func (r *ScriptedRNG) WithInts(ints ...int) *ScriptedRNG {
	r.Ints = append(r.Ints, ints...)
	return r
}

func (r *ScriptedRNG) Float64() float64 {
	if r.floatPos >= len(r.Floats) {
		return r.Fallback
	}
	v := r.Floats[r.floatPos]
	r.floatPos++
	return v
}

func (r *ScriptedRNG) Intn(n int) int {
	if r.intPos >= len(r.Ints) {
		return 0
	}
	v := r.Ints[r.intPos]
	r.intPos++
	if v >= n {
		v = n - 1
	}
	return v
}

// Shuffle leaves the order untouched.
func (r *ScriptedRNG) Shuffle(n int, swap func(i, j int)) {}

// FloatsUsed reports how many scripted floats have been consumed.
func (r *ScriptedRNG) FloatsUsed() int { return r.floatPos }

// Card builds a four-attribute card with a white background.
func Card(id, shape, color string, number int, shading string) *game.Card {
	return &game.Card{
		ID:         id,
		Shape:      shape,
		Color:      color,
		Number:     number,
		Shading:    shading,
		Background: game.BackgroundWhite,
	}
}

// Board builds n distinct cards with ids c0..c{n-1}, taken from the full deck.
func Board(n int) game.Board {
	deck := game.NewDeck(game.AllAttributes)
	b := make(game.Board, n)
	for i := range b {
		cp := *deck[i]
		cp.ID = fmt.Sprintf("c%d", i)
		b[i] = &cp
	}
	return b
}

// Cards picks board entries by index.
func Cards(b game.Board, idx ...int) []*game.Card {
	out := make([]*game.Card, len(idx))
	for i, j := range idx {
		out[i] = b[j]
	}
	return out
}
