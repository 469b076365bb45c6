// Package config loads the YAML catalog of round settings, weapons and enemies.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/setrogue/internal/enemy"
	"github.com/peterkuimelis/setrogue/internal/game"
)

// Catalog represents the top-level YAML structure.
type Catalog struct {
	Round   RoundSettings `yaml:"round" json:"round"`
	Weapons []WeaponEntry `yaml:"weapons" json:"weapons"`
	Enemies []EnemyEntry  `yaml:"enemies" json:"enemies"`
}

// WeaponEntry describes one weapon.
type WeaponEntry struct {
	ID      string             `yaml:"id" json:"id"`
	Name    string             `yaml:"name" json:"name"`
	Tier    int                `yaml:"tier" json:"tier"`
	Special string             `yaml:"special" json:"special,omitempty"`
	Effects map[string]float64 `yaml:"effects" json:"effects"`
}

// Weapon converts the entry to a game weapon.
func (w WeaponEntry) Weapon() game.Weapon {
	effects := make(map[string]float64, len(w.Effects))
	for k, v := range w.Effects {
		effects[k] = v
	}
	return game.Weapon{
		ID:            w.ID,
		Name:          w.Name,
		Tier:          w.Tier,
		SpecialEffect: game.SpecialEffect(w.Special),
		Effects:       effects,
	}
}

// EnemyEntry describes one enemy as a list of behavior slots.
type EnemyEntry struct {
	Name        string        `yaml:"name" json:"name"`
	Tier        int           `yaml:"tier" json:"tier"`
	Description string        `yaml:"description" json:"description"`
	Effects     []EffectEntry `yaml:"effects" json:"effects"`
	Defeat      string        `yaml:"defeat" json:"defeat,omitempty"`
}

// EffectEntry names a behavior and carries its raw config, decoded once the
// behavior's config type is known.
type EffectEntry struct {
	Behavior string    `yaml:"behavior" json:"behavior"`
	Config   yaml.Node `yaml:"config" json:"-"`
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses catalog YAML and fills round defaults.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	c.Round = c.Round.withDefaults()
	if err := c.Round.Validate(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, w := range c.Weapons {
		if w.ID == "" {
			return nil, fmt.Errorf("weapon %q has no id", w.Name)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("duplicate weapon id %q", w.ID)
		}
		seen[w.ID] = true
	}
	return &c, nil
}

// WeaponList returns every catalog weapon.
func (c *Catalog) WeaponList() []game.Weapon {
	out := make([]game.Weapon, len(c.Weapons))
	for i, w := range c.Weapons {
		out[i] = w.Weapon()
	}
	return out
}

// WeaponsByID resolves ids to weapons. Repeated ids yield duplicate weapons.
func (c *Catalog) WeaponsByID(ids []string) ([]game.Weapon, error) {
	byID := make(map[string]WeaponEntry, len(c.Weapons))
	for _, w := range c.Weapons {
		byID[w.ID] = w
	}
	out := make([]game.Weapon, 0, len(ids))
	for _, id := range ids {
		w, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("weapon %q not found", id)
		}
		out = append(out, w.Weapon())
	}
	return out, nil
}

// Slots decodes the entry's behaviors and configs.
func (e EnemyEntry) Slots() ([]enemy.Slot, error) {
	slots := make([]enemy.Slot, 0, len(e.Effects))
	for i, eff := range e.Effects {
		b, err := enemy.LookupBehavior(eff.Behavior)
		if err != nil {
			return nil, fmt.Errorf("enemy %q effect %d: %w", e.Name, i+1, err)
		}
		cfg := b.NewConfig()
		if !eff.Config.IsZero() {
			if err := eff.Config.Decode(cfg); err != nil {
				return nil, fmt.Errorf("enemy %q effect %s: %w", e.Name, eff.Behavior, err)
			}
		}
		slots = append(slots, enemy.Slot{Behavior: b, Config: cfg})
	}
	return slots, nil
}

// RegisterEnemies adds every catalog enemy to reg.
func (c *Catalog) RegisterEnemies(reg *enemy.Registry) error {
	for _, e := range c.Enemies {
		slots, err := e.Slots()
		if err != nil {
			return err
		}
		defeat, err := enemy.CompileDefeatCondition(e.Defeat)
		if err != nil {
			return fmt.Errorf("enemy %q: %w", e.Name, err)
		}
		meta := enemy.Meta{Name: e.Name, Tier: e.Tier, Description: e.Description}
		if err := reg.RegisterComposed(meta, slots, defeat); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry builds a registry holding the built-in roster plus the
// catalog enemies. A nil catalog yields only the built-ins.
func NewRegistry(c *Catalog) (*enemy.Registry, error) {
	reg := enemy.NewRegistry()
	if err := enemy.RegisterDefaults(reg); err != nil {
		return nil, err
	}
	if c != nil {
		if err := c.RegisterEnemies(reg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
