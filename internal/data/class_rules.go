package data

import (
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// DefaultQualificationThreshold — редкость, начиная с которой предмет требует разблокировки.
const DefaultQualificationThreshold = 4

// ClassRules holds per-class weapon restrictions and the qualification threshold.
type ClassRules struct {
	mu        sync.RWMutex
	forbidden map[model.Class]map[string]struct{}
	threshold int32
}

// NewClassRules creates rules with no restrictions and the default threshold.
func NewClassRules() *ClassRules {
	return &ClassRules{
		forbidden: make(map[model.Class]map[string]struct{}, 4),
		threshold: DefaultQualificationThreshold,
	}
}

// Forbid marks weapon kinds as unusable by class.
func (r *ClassRules) Forbid(class model.Class, kinds ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.forbidden[class]
	if !ok {
		set = make(map[string]struct{}, len(kinds))
		r.forbidden[class] = set
	}
	for _, k := range kinds {
		set[k] = struct{}{}
	}
}

// Forbids reports whether class may not use items of weaponKind.
// Items without a weapon kind are never forbidden.
func (r *ClassRules) Forbids(class model.Class, weaponKind string) bool {
	if weaponKind == "" {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.forbidden[class][weaponKind]
	return ok
}

// SetQualificationThreshold changes the rarity at/above which an unlock is required.
func (r *ClassRules) SetQualificationThreshold(rarity int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threshold = rarity
}

// QualificationThreshold returns the rarity at/above which an unlock is required.
func (r *ClassRules) QualificationThreshold() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.threshold
}
