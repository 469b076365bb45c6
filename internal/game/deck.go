package game

import "fmt"

// NewDeck builds one card for every value combination of the active attributes.
// Inactive attributes take their first domain value. Cards are numbered in
// generation order; call Shuffle to randomize.
func NewDeck(active ActiveAttributes) Board {
	deck := Board{newBaseCard()}
	for _, attr := range active {
		next := make(Board, 0, len(deck)*3)
		for _, c := range deck {
			for _, v := range attr.Values() {
				cp := *c
				cp.setValue(attr, v)
				next = append(next, &cp)
			}
		}
		deck = next
	}
	for i, c := range deck {
		c.ID = fmt.Sprintf("card-%d", i+1)
	}
	return deck
}

// Shuffle randomizes the deck order in place.
func (b Board) Shuffle(rng RNG) {
	rng.Shuffle(len(b), func(i, j int) {
		b[i], b[j] = b[j], b[i]
	})
}

func newBaseCard() *Card {
	c := &Card{}
	for _, attr := range AllAttributes {
		c.setValue(attr, attr.Values()[0])
	}
	return c
}
