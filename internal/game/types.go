package game

import (
	"fmt"
	"slices"
	"strconv"
)

// --- Attributes ---

type Attribute int

const (
	AttrShape Attribute = iota
	AttrColor
	AttrNumber
	AttrShading
	AttrBackground
)

// AllAttributes lists every card attribute in canonical order.
var AllAttributes = []Attribute{AttrShape, AttrColor, AttrNumber, AttrShading, AttrBackground}

func (a Attribute) String() string {
	switch a {
	case AttrShape:
		return "shape"
	case AttrColor:
		return "color"
	case AttrNumber:
		return "number"
	case AttrShading:
		return "shading"
	case AttrBackground:
		return "background"
	default:
		return "unknown"
	}
}

// ParseAttribute maps an attribute name back to its Attribute.
func ParseAttribute(name string) (Attribute, error) {
	for _, a := range AllAttributes {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// Attribute value domains. Every attribute has exactly three values.
const (
	ShapeOval     = "oval"
	ShapeSquiggle = "squiggle"
	ShapeDiamond  = "diamond"

	ColorRed    = "red"
	ColorGreen  = "green"
	ColorPurple = "purple"

	ShadingSolid   = "solid"
	ShadingStriped = "striped"
	ShadingOpen    = "open"

	BackgroundWhite = "white"
	BackgroundGray  = "gray"
	BackgroundBlack = "black"
)

// Values returns the three possible values for an attribute.
func (a Attribute) Values() []string {
	switch a {
	case AttrShape:
		return []string{ShapeOval, ShapeSquiggle, ShapeDiamond}
	case AttrColor:
		return []string{ColorRed, ColorGreen, ColorPurple}
	case AttrNumber:
		return []string{"1", "2", "3"}
	case AttrShading:
		return []string{ShadingSolid, ShadingStriped, ShadingOpen}
	case AttrBackground:
		return []string{BackgroundWhite, BackgroundGray, BackgroundBlack}
	default:
		return nil
	}
}

// ActiveAttributes is the ordered subset of attributes currently in play.
type ActiveAttributes []Attribute

// AttributesForCount returns the first n attributes in canonical order.
// n is clamped to the playable range 2..5.
func AttributesForCount(n int) ActiveAttributes {
	if n < 2 {
		n = 2
	}
	if n > len(AllAttributes) {
		n = len(AllAttributes)
	}
	out := make(ActiveAttributes, n)
	copy(out, AllAttributes[:n])
	return out
}

// Names returns the attribute names in order.
func (aa ActiveAttributes) Names() []string {
	names := make([]string, len(aa))
	for i, a := range aa {
		names[i] = a.String()
	}
	return names
}

// --- Card ---

// Card is a single card on the board. Attribute fields are fixed at creation;
// the remaining fields are transient flags mutated by weapons and enemy effects.
type Card struct {
	ID         string
	Shape      string
	Color      string
	Number     int
	Shading    string
	Background string

	Selected   bool
	OnFire     bool
	IsFaceDown bool
	IsDud      bool
	Health     int // extra hits required before the card is removed
	BombTimer  int // ms until detonation, 0 when unarmed
}

// Value returns the card's value for the given attribute.
func (c *Card) Value(a Attribute) string {
	switch a {
	case AttrShape:
		return c.Shape
	case AttrColor:
		return c.Color
	case AttrNumber:
		return strconv.Itoa(c.Number)
	case AttrShading:
		return c.Shading
	case AttrBackground:
		return c.Background
	default:
		return ""
	}
}

// SetValue assigns an attribute value, rejecting anything outside the
// attribute's domain.
func (c *Card) SetValue(a Attribute, v string) error {
	if !slices.Contains(a.Values(), v) {
		return fmt.Errorf("invalid %s value %q", a, v)
	}
	c.setValue(a, v)
	return nil
}

// setValue assigns a value already known to be in the domain.
func (c *Card) setValue(a Attribute, v string) {
	switch a {
	case AttrShape:
		c.Shape = v
	case AttrColor:
		c.Color = v
	case AttrNumber:
		c.Number, _ = strconv.Atoi(v)
	case AttrShading:
		c.Shading = v
	case AttrBackground:
		c.Background = v
	}
}

func (c *Card) String() string {
	if c == nil {
		return "(empty)"
	}
	if c.Background != "" {
		return fmt.Sprintf("%s[%d %s %s %s %s]", c.ID, c.Number, c.Color, c.Shading, c.Shape, c.Background)
	}
	return fmt.Sprintf("%s[%d %s %s %s]", c.ID, c.Number, c.Color, c.Shading, c.Shape)
}

// --- Board ---

// Board is an ordered card list. Position is the only spatial information;
// rows and columns are derived through the grid helpers.
type Board []*Card

// IndexOf returns the board position of the card with the given id, or -1.
func (b Board) IndexOf(id string) int {
	for i, c := range b {
		if c != nil && c.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the card with the given id, or nil.
func (b Board) Find(id string) *Card {
	if i := b.IndexOf(id); i >= 0 {
		return b[i]
	}
	return nil
}

// Without returns a new board with every card whose id is in ids removed.
// Order of the remaining cards is preserved.
func (b Board) Without(ids []string) Board {
	drop := IDSet(ids)
	out := make(Board, 0, len(b))
	for _, c := range b {
		if _, ok := drop[c.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// IDs returns the ids of the given cards in order.
func IDs(cards []*Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// IDSet builds a lookup set from card ids.
func IDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// --- Weapons ---

type SpecialEffect string

const (
	SpecialNone      SpecialEffect = ""
	SpecialExplosive SpecialEffect = "explosive"
	SpecialLaser     SpecialEffect = "laser"
	SpecialFire      SpecialEffect = "fire"
	SpecialRicochet  SpecialEffect = "ricochet"
	SpecialEcho      SpecialEffect = "echo"
)

// Weapon effect keys used in Weapon.Effects and weapon-counter modifiers.
const (
	EffectExplosionChance     = "explosionChance"
	EffectLaserChance         = "laserChance"
	EffectFireSpreadChance    = "fireSpreadChance"
	EffectRicochetChance      = "ricochetChance"
	EffectRicochetChainChance = "ricochetChainChance"
	EffectHealingChance       = "healingChance"
	EffectHintGainChance      = "hintGainChance"
	EffectTimeGainChance      = "timeGainChance"
	EffectGraceGainChance     = "graceGainChance"
	EffectBoardGrowthChance   = "boardGrowthChance"
	EffectEchoChance          = "echoChance"
)

// Weapon is an immutable item held for a round. A round may hold duplicates.
type Weapon struct {
	ID            string
	Name          string
	Tier          int
	SpecialEffect SpecialEffect
	Effects       map[string]float64
}

// Effect returns the numeric value for key, or 0 when absent.
func (w Weapon) Effect(key string) float64 {
	return w.Effects[key]
}

// PlayerStats is the aggregate of all chance/amount fields. Chances are percentages.
type PlayerStats struct {
	ExplosionChance     float64
	LaserChance         float64
	FireSpreadChance    float64
	RicochetChance      float64
	RicochetChainChance float64
	HealingChance       float64
	HintGainChance      float64
	TimeGainChance      float64
	TimeGainAmount      float64 // seconds
	GraceGainChance     float64
	BoardGrowthChance   float64
	BoardGrowthAmount   int
	EchoChance          float64
}

// Chance returns the stat value for a weapon effect key.
func (s PlayerStats) Chance(key string) float64 {
	if p := s.field(key); p != nil {
		return *p
	}
	return 0
}

// WithChance returns a copy of the stats with the given effect key set to v.
func (s PlayerStats) WithChance(key string, v float64) PlayerStats {
	if p := s.field(key); p != nil {
		*p = v
	}
	return s
}

// IsEffectKey reports whether key names a PlayerStats chance.
func IsEffectKey(key string) bool {
	return (&PlayerStats{}).field(key) != nil
}

func (s *PlayerStats) field(key string) *float64 {
	switch key {
	case EffectExplosionChance:
		return &s.ExplosionChance
	case EffectLaserChance:
		return &s.LaserChance
	case EffectFireSpreadChance:
		return &s.FireSpreadChance
	case EffectRicochetChance:
		return &s.RicochetChance
	case EffectRicochetChainChance:
		return &s.RicochetChainChance
	case EffectHealingChance:
		return &s.HealingChance
	case EffectHintGainChance:
		return &s.HintGainChance
	case EffectTimeGainChance:
		return &s.TimeGainChance
	case EffectGraceGainChance:
		return &s.GraceGainChance
	case EffectBoardGrowthChance:
		return &s.BoardGrowthChance
	case EffectEchoChance:
		return &s.EchoChance
	default:
		return nil
	}
}

// StatsFromWeapons sums every weapon's effects on top of base.
func StatsFromWeapons(base PlayerStats, weapons []Weapon) PlayerStats {
	out := base
	for _, w := range weapons {
		for key, v := range w.Effects {
			out = out.WithChance(key, out.Chance(key)+v)
		}
	}
	return out
}
