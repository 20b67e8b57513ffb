package data

import (
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// ReactionTable is the sparse (mark, incoming) → reaction mapping.
type ReactionTable struct {
	mu      sync.RWMutex
	entries map[model.ReactionKey]model.Reaction
}

// NewReactionTable creates an empty reaction table.
func NewReactionTable() *ReactionTable {
	return &ReactionTable{entries: make(map[model.ReactionKey]model.Reaction, 8)}
}

// Put registers or replaces the reaction for (mark, incoming).
func (t *ReactionTable) Put(mark, incoming model.Element, r model.Reaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[model.ReactionKey{Mark: mark, Incoming: incoming}] = r
}

// Len returns the number of entries.
func (t *ReactionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Lookup returns the reaction for (mark, incoming); false means "no reaction".
func (t *ReactionTable) Lookup(mark, incoming model.Element) (model.Reaction, bool) {
	if mark == model.ElementNone || incoming == model.ElementNone {
		return model.Reaction{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.entries[model.ReactionKey{Mark: mark, Incoming: incoming}]
	return r, ok
}
