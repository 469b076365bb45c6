package enemy

import "github.com/peterkuimelis/setrogue/internal/game"

// WeaponCounter lowers one weapon effect chance by Reduction percentage points.
type WeaponCounter struct {
	Effect    string  `yaml:"effect" json:"effect"`
	Reduction float64 `yaml:"reduction" json:"reduction"`
}

// StatModifiers adjust gameplay numbers while the enemy is alive.
// Zero scalars mean "not set".
type StatModifiers struct {
	TimerSpeedMultiplier float64         `json:"timerSpeedMultiplier,omitempty"`
	DamageMultiplier     float64         `json:"damageMultiplier,omitempty"`
	PointsMultiplier     float64         `json:"pointsMultiplier,omitempty"`
	WeaponCounters       []WeaponCounter `json:"weaponCounters,omitempty"`
}

// Merge overlays next onto m: set scalars overwrite, counters concatenate.
func (m StatModifiers) Merge(next StatModifiers) StatModifiers {
	if next.TimerSpeedMultiplier != 0 {
		m.TimerSpeedMultiplier = next.TimerSpeedMultiplier
	}
	if next.DamageMultiplier != 0 {
		m.DamageMultiplier = next.DamageMultiplier
	}
	if next.PointsMultiplier != 0 {
		m.PointsMultiplier = next.PointsMultiplier
	}
	m.WeaponCounters = append(m.WeaponCounters, next.WeaponCounters...)
	return m
}

// TimerSpeed returns the clock multiplier, 1 when unset.
func (m StatModifiers) TimerSpeed() float64 { return orOne(m.TimerSpeedMultiplier) }

// Damage returns the damage multiplier, 1 when unset.
func (m StatModifiers) Damage() float64 { return orOne(m.DamageMultiplier) }

// Points returns the points multiplier, 1 when unset.
func (m StatModifiers) Points() float64 { return orOne(m.PointsMultiplier) }

// Apply returns stats with every weapon counter subtracted. Chances never go below zero.
func (m StatModifiers) Apply(stats game.PlayerStats) game.PlayerStats {
	for _, wc := range m.WeaponCounters {
		v := stats.Chance(wc.Effect) - wc.Reduction
		if v < 0 {
			v = 0
		}
		stats = stats.WithChance(wc.Effect, v)
	}
	return stats
}

// ApplyToWeapons returns copies of the weapons with countered effects reduced.
func (m StatModifiers) ApplyToWeapons(weapons []game.Weapon) []game.Weapon {
	if weapons == nil || len(m.WeaponCounters) == 0 {
		return weapons
	}
	out := make([]game.Weapon, len(weapons))
	for i, w := range weapons {
		effects := make(map[string]float64, len(w.Effects))
		for k, v := range w.Effects {
			effects[k] = v
		}
		for _, wc := range m.WeaponCounters {
			if v, ok := effects[wc.Effect]; ok {
				effects[wc.Effect] = max(v-wc.Reduction, 0)
			}
		}
		w.Effects = effects
		out[i] = w
	}
	return out
}

// UIModifiers tell the presentation layer how to render the round.
type UIModifiers struct {
	HintsDisabled        bool    `json:"hintsDisabled,omitempty"`
	TimerSpeedMultiplier float64 `json:"timerSpeedMultiplier,omitempty"`
	ShowInactivityBar    bool    `json:"showInactivityBar,omitempty"`
	InactivityMaxMs      float64 `json:"inactivityMaxMs,omitempty"`
	FaceDownCards        bool    `json:"faceDownCards,omitempty"`
	BombCards            bool    `json:"bombCards,omitempty"`
}

// Merge overlays next onto m; only set fields overwrite.
func (m UIModifiers) Merge(next UIModifiers) UIModifiers {
	if next.HintsDisabled {
		m.HintsDisabled = true
	}
	if next.TimerSpeedMultiplier != 0 {
		m.TimerSpeedMultiplier = next.TimerSpeedMultiplier
	}
	if next.ShowInactivityBar {
		m.ShowInactivityBar = true
	}
	if next.InactivityMaxMs != 0 {
		m.InactivityMaxMs = next.InactivityMaxMs
	}
	if next.FaceDownCards {
		m.FaceDownCards = true
	}
	if next.BombCards {
		m.BombCards = true
	}
	return m
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
