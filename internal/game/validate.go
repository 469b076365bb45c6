package game

// ValidationResult reports whether three cards form a combination and which
// active attributes broke it, in active-attribute order.
type ValidationResult struct {
	IsValid           bool
	InvalidAttributes []Attribute
}

// InvalidNames returns the failing attribute names.
func (r ValidationResult) InvalidNames() []string {
	return ActiveAttributes(r.InvalidAttributes).Names()
}

// GraceEligible reports a near miss: exactly one attribute failed.
func (r ValidationResult) GraceEligible() bool {
	return !r.IsValid && len(r.InvalidAttributes) == 1
}

// CanApplyGrace reports whether a grace charge can turn this result into a match.
// Two or more invalid attributes are never recoverable.
func (r ValidationResult) CanApplyGrace(charges int) bool {
	return charges > 0 && r.GraceEligible()
}

// Validate checks a triple against the active attributes. Each attribute must
// be all-same or all-different across the three cards. Any other card count
// is invalid with no attributes reported.
func Validate(cards []*Card, active ActiveAttributes) ValidationResult {
	if len(cards) != 3 {
		return ValidationResult{}
	}
	var invalid []Attribute
	for _, attr := range active {
		a, b, c := cards[0].Value(attr), cards[1].Value(attr), cards[2].Value(attr)
		allSame := a == b && b == c
		allDiff := a != b && b != c && a != c
		if !allSame && !allDiff {
			invalid = append(invalid, attr)
		}
	}
	return ValidationResult{IsValid: len(invalid) == 0, InvalidAttributes: invalid}
}

// IsValidCombination is shorthand for Validate(...).IsValid.
func IsValidCombination(cards []*Card, active ActiveAttributes) bool {
	return Validate(cards, active).IsValid
}

// FindValidCombination returns the first valid triple in board order, skipping
// any card whose id is in exclude. Returns nil when none exists.
func FindValidCombination(board Board, active ActiveAttributes, exclude []string) []*Card {
	skip := IDSet(exclude)
	pool := make([]*Card, 0, len(board))
	for _, c := range board {
		if _, ok := skip[c.ID]; !ok {
			pool = append(pool, c)
		}
	}
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			for k := j + 1; k < len(pool); k++ {
				triple := []*Card{pool[i], pool[j], pool[k]}
				if IsValidCombination(triple, active) {
					return triple
				}
			}
		}
	}
	return nil
}

// CountValidCombinations counts every valid triple on the board.
func CountValidCombinations(board Board, active ActiveAttributes) int {
	n := 0
	for i := 0; i < len(board); i++ {
		for j := i + 1; j < len(board); j++ {
			for k := j + 1; k < len(board); k++ {
				if IsValidCombination([]*Card{board[i], board[j], board[k]}, active) {
					n++
				}
			}
		}
	}
	return n
}
