package world

import (
	"log/slog"
	"sync"

	"github.com/udisondev/rpgcore/internal/model"
)

// AccessoryLister returns the accessory handles carried outside the main inventory.
type AccessoryLister interface {
	Accessories(actorID uint32) []model.ItemHandle
}

// Registry is the actor arena: stable uint32 handles → actor records.
// Lookups are safe from any goroutine; actor mutation belongs to the tick loop.
type Registry struct {
	actors      sync.Map // map[uint32]*Actor
	ids         *ObjectIDGenerator
	accessories AccessoryLister

	moveSpeedBaseline float64
}

// NewRegistry creates an empty arena. moveSpeedBaseline is the walking speed
// restored when a movement-affecting buff disappears.
func NewRegistry(ids *ObjectIDGenerator, moveSpeedBaseline float64) *Registry {
	if ids == nil {
		ids = IDGenerator()
	}
	return &Registry{ids: ids, moveSpeedBaseline: moveSpeedBaseline}
}

// NewPlayer creates and registers a player actor. Health starts unset; the
// host fills it with stat.Engine.ResetHealth once the loadout is in place.
func (r *Registry) NewPlayer(name string, level int32) *Actor {
	a := newActor(r.ids.NextPlayerID(), KindPlayer, name, level, r.moveSpeedBaseline)
	r.actors.Store(a.id, a)
	slog.Debug("actor registered", "id", a.id, "name", name, "kind", "player")
	return a
}

// NewMob creates and registers a mob actor. Mob ids come from the mob range so
// the external stat provider can be keyed by them.
func (r *Registry) NewMob(name string, level int32) *Actor {
	a := newActor(r.ids.NextMobID(), KindMob, name, level, r.moveSpeedBaseline)
	r.actors.Store(a.id, a)
	slog.Debug("actor registered", "id", a.id, "name", name, "kind", "mob")
	return a
}

// Get returns the actor by id.
func (r *Registry) Get(id uint32) (*Actor, bool) {
	v, ok := r.actors.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Actor), true
}

// Remove drops the actor and, with it, its cache and buffs.
func (r *Registry) Remove(id uint32) {
	if _, ok := r.actors.LoadAndDelete(id); ok {
		slog.Debug("actor removed", "id", id)
	}
}

// Invalidate marks one actor's aggregated attributes stale. Unknown ids are ignored.
func (r *Registry) Invalidate(id uint32) {
	if a, ok := r.Get(id); ok {
		a.invalidate()
	}
}

// SetAccessories lets InvalidateItem find items held in the accessory container.
func (r *Registry) SetAccessories(l AccessoryLister) {
	r.accessories = l
}

// InvalidateItem marks stale every actor carrying h in an inventory slot or
// in the accessory container. Used when item metadata (binding, template) changes.
func (r *Registry) InvalidateItem(h model.ItemHandle) {
	if h == 0 {
		return
	}
	r.ForEach(func(a *Actor) bool {
		if a.Holds(h) || r.holdsAccessory(a.id, h) {
			a.invalidate()
		}
		return true
	})
}

func (r *Registry) holdsAccessory(actorID uint32, h model.ItemHandle) bool {
	if r.accessories == nil {
		return false
	}
	for _, acc := range r.accessories.Accessories(actorID) {
		if acc == h {
			return true
		}
	}
	return false
}

// InvalidateAll marks every actor stale (e.g. after a set-table reload).
func (r *Registry) InvalidateAll() {
	r.ForEach(func(a *Actor) bool {
		a.invalidate()
		return true
	})
}

// ForEach iterates registered actors until fn returns false.
func (r *Registry) ForEach(fn func(a *Actor) bool) {
	r.actors.Range(func(_, v any) bool {
		return fn(v.(*Actor))
	})
}

// Count returns the number of registered actors.
func (r *Registry) Count() int {
	n := 0
	r.actors.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
