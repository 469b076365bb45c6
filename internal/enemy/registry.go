package enemy

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/peterkuimelis/setrogue/internal/game"
)

var (
	ErrUnknownEnemy    = errors.New("unknown enemy")
	ErrDuplicateEnemy  = errors.New("enemy already registered")
	ErrUnknownBehavior = errors.New("unknown behavior")
)

// Factory builds a fresh enemy. Every call must return a new Instance.
type Factory func() *Instance

type entry struct {
	meta    Meta
	factory Factory
}

// Registry maps enemy names to factories. It is built once at startup and
// passed to whatever assembles rounds.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register stores factory under meta.Name.
func (r *Registry) Register(meta Meta, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[meta.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateEnemy, meta.Name)
	}
	r.entries[meta.Name] = entry{meta: meta, factory: factory}
	return nil
}

// RegisterComposed registers an enemy whose every instance is composed from
// the same slots and defeat condition. Slot configs are shared read-only;
// state is allocated per instance.
func (r *Registry) RegisterComposed(meta Meta, slots []Slot, defeat DefeatCondition) error {
	return r.Register(meta, func() *Instance { return Compose(meta, slots, defeat) })
}

// Create returns a new instance of the named enemy.
func (r *Registry) Create(name string) (*Instance, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, name)
	}
	return e.factory(), nil
}

// MustCreate is Create for assembly code where an unknown name is a bug.
func (r *Registry) MustCreate(name string) *Instance {
	inst, err := r.Create(name)
	if err != nil {
		panic(err)
	}
	return inst
}

// Meta returns the metadata of a registered enemy.
func (r *Registry) Meta(name string) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e.meta, ok
}

// Names lists every registered enemy, sorted.
func (r *Registry) Names() []string {
	return r.filter(func(Meta) bool { return true })
}

// NamesForTier lists the enemies of one tier, sorted.
func (r *Registry) NamesForTier(tier int) []string {
	return r.filter(func(m Meta) bool { return m.Tier == tier })
}

// Random creates a random enemy of the given tier; tier 0 picks from all.
func (r *Registry) Random(tier int, rng game.RNG) (*Instance, error) {
	names := r.Names()
	if tier > 0 {
		names = r.NamesForTier(tier)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no enemies for tier %d", ErrUnknownEnemy, tier)
	}
	return r.Create(names[rng.Intn(len(names))])
}

func (r *Registry) filter(keep func(Meta) bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name, e := range r.entries {
		if keep(e.meta) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
