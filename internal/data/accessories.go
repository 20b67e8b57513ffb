package data

import (
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// DefaultAccessorySlots is the accessory container size.
const DefaultAccessorySlots = 4

// AccessoryContainer holds the accessory items of each actor, independent of the
// main inventory. Changes are reported through onChange so the owner's cache
// can be invalidated.
type AccessoryContainer struct {
	mu       sync.RWMutex
	capacity int
	byActor  map[uint32][]model.ItemHandle
	onChange func(actorID uint32)
}

// NewAccessoryContainer creates a container with the given capacity per actor.
func NewAccessoryContainer(capacity int, onChange func(actorID uint32)) *AccessoryContainer {
	if capacity <= 0 {
		capacity = DefaultAccessorySlots
	}
	return &AccessoryContainer{
		capacity: capacity,
		byActor:  make(map[uint32][]model.ItemHandle),
		onChange: onChange,
	}
}

// Equip replaces the accessories of actorID. Extra handles beyond capacity are dropped.
func (c *AccessoryContainer) Equip(actorID uint32, handles ...model.ItemHandle) {
	if len(handles) > c.capacity {
		handles = handles[:c.capacity]
	}
	cp := make([]model.ItemHandle, len(handles))
	copy(cp, handles)

	c.mu.Lock()
	c.byActor[actorID] = cp
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(actorID)
	}
}

// Clear removes every accessory of actorID.
func (c *AccessoryContainer) Clear(actorID uint32) {
	c.mu.Lock()
	_, had := c.byActor[actorID]
	delete(c.byActor, actorID)
	c.mu.Unlock()

	if had && c.onChange != nil {
		c.onChange(actorID)
	}
}

// Accessories returns the accessory handles of actorID (nil when none).
func (c *AccessoryContainer) Accessories(actorID uint32) []model.ItemHandle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byActor[actorID]
}
