package data

import (
	"fmt"
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// MobTemplate — статы моба по имени шаблона.
type MobTemplate struct {
	Name  string
	Level int32
	Stats model.Stats
}

// MobTable holds mob templates and the stat blocks assigned to live mob actors.
// Stat blocks already include externally applied buffs: the host may overwrite
// them with Set at any time.
type MobTable struct {
	mu        sync.RWMutex
	templates map[string]*MobTemplate
	live      map[uint32]model.Stats
}

// NewMobTable creates an empty mob table.
func NewMobTable() *MobTable {
	return &MobTable{
		templates: make(map[string]*MobTemplate, 16),
		live:      make(map[uint32]model.Stats, 64),
	}
}

// AddTemplate registers or replaces a template.
func (t *MobTable) AddTemplate(tmpl *MobTemplate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.templates[tmpl.Name] = tmpl
}

// Template returns the template by name, or nil.
func (t *MobTable) Template(name string) *MobTemplate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.templates[name]
}

// TemplateCount returns the number of templates.
func (t *MobTable) TemplateCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.templates)
}

// Assign gives actorID a copy of the named template's stat block.
func (t *MobTable) Assign(actorID uint32, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tmpl, ok := t.templates[name]
	if !ok {
		return fmt.Errorf("assigning mob %d: unknown template %q", actorID, name)
	}
	t.live[actorID] = tmpl.Stats.Clone()
	return nil
}

// Set replaces the stat block of actorID.
func (t *MobTable) Set(actorID uint32, stats model.Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live[actorID] = stats.Clone()
}

// Remove forgets actorID.
func (t *MobTable) Remove(actorID uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.live, actorID)
}

// Stats returns the stat block of actorID. The returned map must not be modified.
func (t *MobTable) Stats(actorID uint32) (model.Stats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.live[actorID]
	return s, ok
}
