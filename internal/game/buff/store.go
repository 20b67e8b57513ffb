package buff

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/udisondev/rpgcore/internal/model"
)

// strengthEpsilon is the tolerance under which two buff strengths count as equal.
const strengthEpsilon = 0.001

// Instance is one active temporary modifier.
type Instance struct {
	Kind       model.BuffKind
	ExpireAt   time.Time
	Value      float64
	Multiplier bool
}

// Strength returns how far the buff moves an attribute away from neutral:
// |1 - value| for multipliers, |value| for additive buffs.
func (b Instance) Strength() float64 {
	if b.Multiplier {
		return math.Abs(1 - b.Value)
	}
	return math.Abs(b.Value)
}

// expired reports whether the buff is no longer in effect at now.
func (b Instance) expired(now time.Time) bool {
	return !now.Before(b.ExpireAt)
}

type slot struct {
	present bool
	inst    Instance
}

// Store tracks active buffs of one actor, at most one per kind.
//
// Thread-safe: all methods are protected by sync.RWMutex. Compound operations
// (read value, then add) are not atomic and must come from one logical context.
type Store struct {
	mu    sync.RWMutex
	slots [model.BuffKindCount]slot

	// movementCleared is called (without the lock) when a movement-affecting
	// buff goes from present to absent.
	movementCleared func(kind model.BuffKind)
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// SetMovementHook installs the callback run when a movement-affecting buff disappears.
func (s *Store) SetMovementHook(fn func(kind model.BuffKind)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movementCleared = fn
}

// Add applies a buff of the given kind.
// Returns true if the store changed.
//
// Resolution against an existing, non-expired instance of the same kind:
//   - equal strength (within 0.001) → keep value, expiry = max(old, new)
//   - stronger → replaces value and expiry
//   - weaker → discarded, the existing instance is authoritative
func (s *Store) Add(kind model.BuffKind, duration time.Duration, value float64, multiplier bool) bool {
	if !kind.Valid() || duration <= 0 {
		return false
	}

	now := time.Now()
	incoming := Instance{
		Kind:       kind,
		ExpireAt:   now.Add(duration),
		Value:      value,
		Multiplier: multiplier,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := &s.slots[kind]
	if !cur.present || cur.inst.expired(now) {
		cur.present = true
		cur.inst = incoming
		slog.Debug("buff applied", "kind", kind, "value", value, "multiplier", multiplier)
		return true
	}

	oldStrength := cur.inst.Strength()
	newStrength := incoming.Strength()

	switch {
	case math.Abs(newStrength-oldStrength) < strengthEpsilon:
		if incoming.ExpireAt.After(cur.inst.ExpireAt) {
			cur.inst.ExpireAt = incoming.ExpireAt
			return true
		}
		return false
	case newStrength > oldStrength:
		cur.inst = incoming
		slog.Debug("buff replaced", "kind", kind, "value", value, "multiplier", multiplier)
		return true
	default:
		return false
	}
}

// Get returns the live instance of kind. Expired instances are reported absent.
func (s *Store) Get(kind model.BuffKind) (Instance, bool) {
	if !kind.Valid() {
		return Instance{}, false
	}
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	cur := s.slots[kind]
	if !cur.present || cur.inst.expired(now) {
		return Instance{}, false
	}
	return cur.inst, true
}

// Has reports whether a live buff of kind is present.
func (s *Store) Has(kind model.BuffKind) bool {
	_, ok := s.Get(kind)
	return ok
}

// Value returns the value of the live buff of kind, or 0.
func (s *Store) Value(kind model.BuffKind) float64 {
	b, ok := s.Get(kind)
	if !ok {
		return 0
	}
	return b.Value
}

// Remove drops the buff of kind. Returns true if a live buff was removed.
func (s *Store) Remove(kind model.BuffKind) bool {
	if !kind.Valid() {
		return false
	}
	now := time.Now()

	s.mu.Lock()
	cur := &s.slots[kind]
	live := cur.present && !cur.inst.expired(now)
	wasPresent := cur.present
	*cur = slot{}
	hook := s.movementCleared
	s.mu.Unlock()

	if wasPresent && kind.AffectsMovement() && hook != nil {
		hook(kind)
	}
	return live
}

// Clear removes every buff and returns the kinds that were live.
func (s *Store) Clear() []model.BuffKind {
	now := time.Now()

	s.mu.Lock()
	var live, movement []model.BuffKind
	for k := range s.slots {
		cur := &s.slots[k]
		if !cur.present {
			continue
		}
		kind := model.BuffKind(k)
		if !cur.inst.expired(now) {
			live = append(live, kind)
		}
		if kind.AffectsMovement() {
			movement = append(movement, kind)
		}
		*cur = slot{}
	}
	hook := s.movementCleared
	s.mu.Unlock()

	if hook != nil {
		for _, kind := range movement {
			hook(kind)
		}
	}
	return live
}

// Sweep removes expired buffs and returns their kinds.
// Runs the movement hook once for every removed movement-affecting buff.
// Idempotent: a second call without time passing removes nothing.
func (s *Store) Sweep() []model.BuffKind {
	now := time.Now()

	s.mu.Lock()
	var removed []model.BuffKind
	for k := range s.slots {
		cur := &s.slots[k]
		if cur.present && cur.inst.expired(now) {
			*cur = slot{}
			removed = append(removed, model.BuffKind(k))
		}
	}
	hook := s.movementCleared
	s.mu.Unlock()

	for _, kind := range removed {
		slog.Debug("buff expired", "kind", kind)
		if hook != nil && kind.AffectsMovement() {
			hook(kind)
		}
	}
	return removed
}

// Apply layers live buffs affecting attr over base.
// Additive buffs are summed first, then multiplicative buffs are applied:
// (base + Σadd) × Πmul. Kinds are visited in declaration order so the result is deterministic.
func (s *Store) Apply(attr model.Attribute, base float64) float64 {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	add := 0.0
	mul := 1.0
	for k := range s.slots {
		cur := s.slots[k]
		if !cur.present || cur.inst.expired(now) || !model.BuffKind(k).Affects(attr) {
			continue
		}
		if cur.inst.Multiplier {
			mul *= cur.inst.Value
		} else {
			add += cur.inst.Value
		}
	}
	return (base + add) * mul
}

// Active returns a copy of every live buff in kind order.
func (s *Store) Active() []Instance {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Instance, 0, 4)
	for _, cur := range s.slots {
		if cur.present && !cur.inst.expired(now) {
			result = append(result, cur.inst)
		}
	}
	return result
}

// Count returns the number of live buffs.
func (s *Store) Count() int {
	return len(s.Active())
}
