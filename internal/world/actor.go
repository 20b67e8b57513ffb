package world

import (
	"time"

	"github.com/udisondev/rpgcore/internal/game/buff"
	"github.com/udisondev/rpgcore/internal/model"
)

// Kind distinguishes players (aggregated from equipment) from mobs (external stat block).
type Kind int8

const (
	KindPlayer Kind = iota
	KindMob
)

// Actor — живой участник боя: игрок или моб.
//
// Actor is owned by the host tick loop and is not safe for concurrent mutation;
// only its buff store may be touched from deferred contexts. Every setter that
// can change aggregated attributes goes through invalidate().
type Actor struct {
	id   uint32
	kind Kind
	name string

	class    model.Class
	race     model.Race
	subclass model.Subclass
	level    int32

	// bypassBinding lets the actor use items soulbound to someone else (GM privilege).
	bypassBinding bool

	slots      [model.InventorySize]model.ItemHandle
	activeSlot int

	// heldItem/heldSince track identity of the item in the active slot.
	heldItem  model.ItemHandle
	heldSince time.Time

	health     float64
	healthSet  bool
	moveSpeed  float64 // last movement speed pushed to the host
	mark       model.Element
	channeling bool

	cache AttributeCache
	buffs *buff.Store
}

func newActor(id uint32, kind Kind, name string, level int32, moveSpeed float64) *Actor {
	a := &Actor{
		id:         id,
		kind:       kind,
		name:       name,
		level:      level,
		activeSlot: model.SlotMainHand,
		heldSince:  time.Now(),
		moveSpeed:  moveSpeed,
		buffs:      buff.NewStore(),
	}
	a.buffs.SetMovementHook(func(model.BuffKind) {
		a.moveSpeed = moveSpeed
	})
	return a
}

// ID returns the actor's stable handle.
func (a *Actor) ID() uint32 { return a.id }

// Kind returns whether the actor is a player or a mob.
func (a *Actor) Kind() Kind { return a.kind }

// IsMob reports whether stats come from the external mob stat provider.
func (a *Actor) IsMob() bool { return a.kind == KindMob }

// Name returns the display name.
func (a *Actor) Name() string { return a.name }

// Class returns the combat class.
func (a *Actor) Class() model.Class { return a.class }

// Race returns the race.
func (a *Actor) Race() model.Race { return a.race }

// Subclass returns the chosen subclass.
func (a *Actor) Subclass() model.Subclass { return a.subclass }

// Level returns the character level.
func (a *Actor) Level() int32 { return a.level }

// BypassBinding reports whether soulbound items of other actors are usable.
func (a *Actor) BypassBinding() bool { return a.bypassBinding }

// ActiveSlot returns the configured active (held) slot.
func (a *Actor) ActiveSlot() int { return a.activeSlot }

// Slot returns the item handle at slot, or 0.
func (a *Actor) Slot(slot int) model.ItemHandle {
	if !model.ValidSlot(slot) {
		return 0
	}
	return a.slots[slot]
}

// ForEachSlot calls fn for every occupied slot in index order.
func (a *Actor) ForEachSlot(fn func(slot int, h model.ItemHandle)) {
	for i, h := range a.slots {
		if h != 0 {
			fn(i, h)
		}
	}
}

// Holds reports whether h sits in one of the inventory slots.
func (a *Actor) Holds(h model.ItemHandle) bool {
	for _, s := range a.slots {
		if s == h {
			return true
		}
	}
	return false
}

// Cache returns the actor's attribute cache.
func (a *Actor) Cache() *AttributeCache { return &a.cache }

// Buffs returns the actor's buff store.
func (a *Actor) Buffs() *buff.Store { return a.buffs }

// Health returns current health. It is 0 until the host sets it,
// usually through stat.Engine.ResetHealth right after registration.
func (a *Actor) Health() float64 { return a.health }

// HealthSet reports whether health was ever assigned.
func (a *Actor) HealthSet() bool { return a.healthSet }

// SetHealth sets current health, never below zero.
func (a *Actor) SetHealth(hp float64) {
	if hp < 0 {
		hp = 0
	}
	a.health = hp
	a.healthSet = true
}

// MoveSpeed returns the movement speed last pushed to the host.
func (a *Actor) MoveSpeed() float64 { return a.moveSpeed }

// SetMoveSpeed records the movement speed pushed to the host.
func (a *Actor) SetMoveSpeed(v float64) { a.moveSpeed = v }

// Mark returns the elemental mark currently on the actor.
func (a *Actor) Mark() model.Element { return a.mark }

// SetMark replaces the elemental mark. ElementNone clears it.
func (a *Actor) SetMark(e model.Element) { a.mark = e }

// Channeling reports whether the actor has a channeled action in flight.
func (a *Actor) Channeling() bool { return a.channeling }

// SetChanneling marks a channeled action as started or finished.
func (a *Actor) SetChanneling(v bool) { a.channeling = v }

// HoldSeconds returns how long the current active item has been held.
func (a *Actor) HoldSeconds() float64 {
	return time.Since(a.heldSince).Seconds()
}

// --- Mutations that affect aggregation. Each one invalidates the cache. ---

// SetClass changes the combat class.
func (a *Actor) SetClass(c model.Class) {
	a.class = c
	a.invalidate()
}

// SetRace changes the race.
func (a *Actor) SetRace(r model.Race) {
	a.race = r
	a.invalidate()
}

// SetLevel changes the level.
func (a *Actor) SetLevel(level int32) {
	a.level = level
	a.invalidate()
}

// SetSubclass changes the subclass. The hold timer keeps running: it tracks
// the held item, not the subclass.
func (a *Actor) SetSubclass(sc model.Subclass) {
	a.subclass = sc
	a.invalidate()
}

// SetBypassBinding grants or revokes the soulbound-override privilege.
func (a *Actor) SetBypassBinding(v bool) {
	a.bypassBinding = v
	a.invalidate()
}

// SetSlot puts h into slot (0 empties it). Out-of-range slots are ignored.
func (a *Actor) SetSlot(slot int, h model.ItemHandle) {
	if !model.ValidSlot(slot) {
		return
	}
	a.slots[slot] = h
	a.trackHeld()
	a.invalidate()
}

// SetActiveSlot changes the held slot. Out-of-range slots are ignored.
func (a *Actor) SetActiveSlot(slot int) {
	if !model.ValidSlot(slot) {
		return
	}
	a.activeSlot = slot
	a.trackHeld()
	a.invalidate()
}

// Invalidate marks aggregated attributes stale after an external change
// (accessory container, set table reload).
func (a *Actor) Invalidate() {
	a.invalidate()
}

// trackHeld resets the hold timer when the identity in the active slot changes.
func (a *Actor) trackHeld() {
	h := a.slots[a.activeSlot]
	if h != a.heldItem {
		a.heldItem = h
		a.heldSince = time.Now()
	}
}

// invalidate is the single choke point for cache invalidation.
func (a *Actor) invalidate() {
	a.cache.invalidate()
}
