package data

import (
	"fmt"
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

type itemInstance struct {
	templateID int32
	boundTo    uint32
}

// ItemTable holds item templates and the live item instances that reference them.
// Implements the item metadata provider: Item(handle) → template + binding.
//
// Thread-safe: instances may be spawned from loaders while the tick loop reads.
type ItemTable struct {
	mu        sync.RWMutex
	templates map[int32]*model.ItemTemplate
	items     map[model.ItemHandle]itemInstance

	nextID   func() uint32
	onChange func(h model.ItemHandle)
}

// NewItemTable creates an empty table. nextID allocates instance handles.
func NewItemTable(nextID func() uint32) *ItemTable {
	return &ItemTable{
		templates: make(map[int32]*model.ItemTemplate, 64),
		items:     make(map[model.ItemHandle]itemInstance, 256),
		nextID:    nextID,
	}
}

// SetOnChange installs the hook called with every instance whose metadata
// changed (binding, destruction, template replacement). nil disables it.
func (t *ItemTable) SetOnChange(fn func(h model.ItemHandle)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// AddTemplate registers or replaces a template. Replacing a template reports
// every live instance of it as changed.
func (t *ItemTable) AddTemplate(tmpl *model.ItemTemplate) {
	t.mu.Lock()
	_, replaced := t.templates[tmpl.ItemID]
	t.templates[tmpl.ItemID] = tmpl

	var changed []model.ItemHandle
	if replaced && t.onChange != nil {
		for h, inst := range t.items {
			if inst.templateID == tmpl.ItemID {
				changed = append(changed, h)
			}
		}
	}
	fn := t.onChange
	t.mu.Unlock()

	for _, h := range changed {
		fn(h)
	}
}

// Template returns the template by id, or nil.
func (t *ItemTable) Template(id int32) *model.ItemTemplate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.templates[id]
}

// TemplateCount returns the number of registered templates.
func (t *ItemTable) TemplateCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.templates)
}

// Templates returns every template (unordered).
func (t *ItemTable) Templates() []*model.ItemTemplate {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*model.ItemTemplate, 0, len(t.templates))
	for _, tmpl := range t.templates {
		out = append(out, tmpl)
	}
	return out
}

// Spawn creates a new instance of templateID. boundTo = 0 means unbound.
func (t *ItemTable) Spawn(templateID int32, boundTo uint32) (model.ItemHandle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.templates[templateID]; !ok {
		return 0, fmt.Errorf("spawning item: unknown template %d", templateID)
	}
	h := model.ItemHandle(t.nextID())
	t.items[h] = itemInstance{templateID: templateID, boundTo: boundTo}
	return h, nil
}

// Register records an instance with a known handle (e.g. loaded from the database).
func (t *ItemTable) Register(h model.ItemHandle, templateID int32, boundTo uint32) error {
	if h == 0 {
		return fmt.Errorf("registering item: zero handle")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.templates[templateID]; !ok {
		return fmt.Errorf("registering item %d: unknown template %d", h, templateID)
	}
	t.items[h] = itemInstance{templateID: templateID, boundTo: boundTo}
	return nil
}

// Bind soulbinds an instance to actorID (0 unbinds). Returns false for unknown handles.
func (t *ItemTable) Bind(h model.ItemHandle, actorID uint32) bool {
	t.mu.Lock()
	inst, ok := t.items[h]
	if !ok {
		t.mu.Unlock()
		return false
	}
	changed := inst.boundTo != actorID
	inst.boundTo = actorID
	t.items[h] = inst
	fn := t.onChange
	t.mu.Unlock()

	if changed && fn != nil {
		fn(h)
	}
	return true
}

// Destroy forgets an instance.
func (t *ItemTable) Destroy(h model.ItemHandle) {
	t.mu.Lock()
	_, had := t.items[h]
	delete(t.items, h)
	fn := t.onChange
	t.mu.Unlock()

	if had && fn != nil {
		fn(h)
	}
}

// Item returns the metadata of an instance. Missing handles or templates report false.
func (t *ItemTable) Item(h model.ItemHandle) (model.ItemMeta, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	inst, ok := t.items[h]
	if !ok {
		return model.ItemMeta{}, false
	}
	tmpl, ok := t.templates[inst.templateID]
	if !ok {
		return model.ItemMeta{}, false
	}
	return model.ItemMeta{Handle: h, Template: tmpl, BoundTo: inst.boundTo}, true
}
