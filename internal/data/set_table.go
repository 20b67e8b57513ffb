package data

import (
	"slices"
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// SetTier — бонус сета, открывающийся при Count активных предметах.
type SetTier struct {
	Count    int
	Stats    model.Stats
	Passives []string
}

// SetTable maps a set id to its tiers (sorted by Count ascending).
type SetTable struct {
	mu   sync.RWMutex
	sets map[string][]SetTier
}

// NewSetTable creates an empty set table.
func NewSetTable() *SetTable {
	return &SetTable{sets: make(map[string][]SetTier, 16)}
}

// Put registers or replaces the tiers of setID.
func (t *SetTable) Put(setID string, tiers []SetTier) {
	sorted := slices.Clone(tiers)
	slices.SortFunc(sorted, func(a, b SetTier) int { return a.Count - b.Count })

	t.mu.Lock()
	defer t.mu.Unlock()
	t.sets[setID] = sorted
}

// Len returns the number of sets.
func (t *SetTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sets)
}

// Tiers returns the tiers of setID (nil when unknown).
func (t *SetTable) Tiers(setID string) []SetTier {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sets[setID]
}

// Bonus returns the cumulative bonus of setID at count active pieces:
// every tier with Count <= count contributes. Unknown sets return nil, nil.
func (t *SetTable) Bonus(setID string, count int) (model.Stats, []string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var (
		stats    model.Stats
		passives []string
	)
	for _, tier := range t.sets[setID] {
		if tier.Count > count {
			break
		}
		if stats == nil {
			stats = make(model.Stats, len(tier.Stats))
		}
		stats.Merge(tier.Stats)
		passives = append(passives, tier.Passives...)
	}
	return stats, passives
}

// IDs returns every set id in sorted order.
func (t *SetTable) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.sets))
	for id := range t.sets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
