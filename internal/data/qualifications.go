package data

import (
	"slices"
	"sync"
)

// Qualifications records which rare item ids each actor has unlocked.
type Qualifications struct {
	mu       sync.RWMutex
	unlocked map[uint32]map[int32]struct{}
	onChange func(actorID uint32)
}

// NewQualifications creates an empty store. onChange may be nil.
func NewQualifications(onChange func(actorID uint32)) *Qualifications {
	return &Qualifications{
		unlocked: make(map[uint32]map[int32]struct{}),
		onChange: onChange,
	}
}

// Has reports whether actorID unlocked itemID.
func (q *Qualifications) Has(actorID uint32, itemID int32) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	_, ok := q.unlocked[actorID][itemID]
	return ok
}

// Items returns the unlocked item ids of actorID in ascending order.
func (q *Qualifications) Items(actorID uint32) []int32 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	set := q.unlocked[actorID]
	if len(set) == 0 {
		return nil
	}
	out := make([]int32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Unlock grants actorID the qualification for itemID.
func (q *Qualifications) Unlock(actorID uint32, itemID int32) {
	q.mu.Lock()
	set, ok := q.unlocked[actorID]
	if !ok {
		set = make(map[int32]struct{}, 4)
		q.unlocked[actorID] = set
	}
	set[itemID] = struct{}{}
	q.mu.Unlock()

	if q.onChange != nil {
		q.onChange(actorID)
	}
}

// Load replaces the unlocked set of actorID (e.g. from the database on login).
func (q *Qualifications) Load(actorID uint32, itemIDs []int32) {
	set := make(map[int32]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		set[id] = struct{}{}
	}

	q.mu.Lock()
	q.unlocked[actorID] = set
	q.mu.Unlock()

	if q.onChange != nil {
		q.onChange(actorID)
	}
}

// Forget drops everything known about actorID.
func (q *Qualifications) Forget(actorID uint32) {
	q.mu.Lock()
	set, had := q.unlocked[actorID]
	delete(q.unlocked, actorID)
	q.mu.Unlock()

	if had && len(set) > 0 && q.onChange != nil {
		q.onChange(actorID)
	}
}
