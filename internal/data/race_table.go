package data

import (
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// RaceBonus is the level-scaled bonus a race adds to its declared attributes.
type RaceBonus struct {
	Base       float64
	Attributes []model.Attribute
}

// RaceTable holds race bonuses.
type RaceTable struct {
	mu    sync.RWMutex
	races map[model.Race]RaceBonus
}

// NewRaceTable creates an empty race table.
func NewRaceTable() *RaceTable {
	return &RaceTable{races: make(map[model.Race]RaceBonus, 4)}
}

// Put registers or replaces the bonus of race.
func (t *RaceTable) Put(race model.Race, b RaceBonus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.races[race] = b
}

// Len returns the number of configured races.
func (t *RaceTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.races)
}

// LevelMod returns the level scaling factor (level+89)/100.
func LevelMod(level int32) float64 {
	return float64(level+89) / 100.0
}

// Bonus returns the scalar added once per declared attribute of race at level.
// Unknown races yield (0, nil).
func (t *RaceTable) Bonus(race model.Race, level int32) (float64, []model.Attribute) {
	t.mu.RLock()
	b, ok := t.races[race]
	t.mu.RUnlock()

	if !ok || len(b.Attributes) == 0 {
		return 0, nil
	}
	return b.Base * LevelMod(level), b.Attributes
}
