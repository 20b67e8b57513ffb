// Package stat aggregates combat attributes for live actors.
//
// Get returns the cached aggregation (items, percent, set tiers, race).
// GetTotal layers platform baselines, the subclass modifier and buffs on top
// at read time; those layers are never cached.
package stat

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/udisondev/rpgcore/internal/game/equip"
	"github.com/udisondev/rpgcore/internal/game/subclass"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/world"
)

// SetProvider returns the cumulative bonus of a set at a given active count.
type SetProvider interface {
	Bonus(setID string, count int) (model.Stats, []string)
}

// RaceProvider returns the level-scaled race bonus and the attributes it applies to.
type RaceProvider interface {
	Bonus(race model.Race, level int32) (float64, []model.Attribute)
}

// MobProvider returns the stat block of a mob actor.
type MobProvider interface {
	Stats(actorID uint32) (model.Stats, bool)
}

// Config — платформенные базовые значения.
type Config struct {
	MaxHealthBaseline float64
	MoveSpeedBaseline float64
}

// DefaultConfig returns the walking-speed and health baselines of an unequipped actor.
func DefaultConfig() Config {
	return Config{
		MaxHealthBaseline: 20,
		MoveSpeedBaseline: 0.1,
	}
}

// Engine computes attributes. It holds no per-actor state: caches live on the actor.
type Engine struct {
	resolver *equip.Resolver
	sets     SetProvider
	races    RaceProvider
	mobs     MobProvider
	cfg      Config
}

// NewEngine creates an engine. sets, races and mobs may be nil.
func NewEngine(resolver *equip.Resolver, sets SetProvider, races RaceProvider, mobs MobProvider, cfg Config) *Engine {
	return &Engine{
		resolver: resolver,
		sets:     sets,
		races:    races,
		mobs:     mobs,
		cfg:      cfg,
	}
}

// Config returns the engine baselines.
func (e *Engine) Config() Config { return e.cfg }

// Get returns the aggregated value of attr without read-time layers.
// A nil actor, an unknown attribute or a mob without a stat block yields 0.
func (e *Engine) Get(a *world.Actor, attr model.Attribute) float64 {
	if a == nil || !attr.Valid() {
		return 0
	}
	if a.IsMob() {
		return e.mobValue(a, attr)
	}
	e.ensure(a)
	return a.Cache().Value(attr)
}

// GetTotal returns the authoritative value of attr: aggregation, baselines,
// subclass modifier, buffs, in that order, then clamped.
func (e *Engine) GetTotal(a *world.Actor, attr model.Attribute) float64 {
	if !attr.Valid() {
		return 0
	}
	if a == nil {
		return e.clamp(attr, e.baseline(attr, 0))
	}
	if a.IsMob() {
		return e.clamp(attr, a.Buffs().Apply(attr, e.mobValue(a, attr)))
	}

	v := e.baseline(attr, e.Get(a, attr))
	if a.Subclass() != model.SubclassNone && subclass.Modifies(attr) {
		v = subclass.Modify(a.Subclass(), attr, e.SubclassContext(a), v)
	}
	v = a.Buffs().Apply(attr, v)
	return e.clamp(attr, v)
}

// SubclassContext returns the live inputs of a's subclass strategy.
func (e *Engine) SubclassContext(a *world.Actor) subclass.Context {
	if a == nil {
		return subclass.Context{}
	}
	return subclass.Context{
		HoldSeconds:       a.HoldSeconds(),
		CooldownReduction: e.GetTotal(a, model.AttrCooldownReduction),
		HealthFraction:    e.HealthFraction(a),
	}
}

// HealthFraction returns current / max health in [0,1].
// Max health here excludes the subclass layer, which itself reads the fraction.
// An actor whose health was never set counts as full.
func (e *Engine) HealthFraction(a *world.Actor) float64 {
	if a == nil || !a.HealthSet() {
		return 1
	}
	maxHP := e.baseline(model.AttrMaxHealth, e.Get(a, model.AttrMaxHealth))
	maxHP = e.clamp(model.AttrMaxHealth, a.Buffs().Apply(model.AttrMaxHealth, maxHP))

	f := a.Health() / maxHP
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// ActivePassives returns the passive ids granted by active items and set tiers.
func (e *Engine) ActivePassives(a *world.Actor) []string {
	if a == nil || a.IsMob() {
		return nil
	}
	e.ensure(a)
	return a.Cache().Passives()
}

// ActiveElement returns the elemental tag the actor attacks with.
func (e *Engine) ActiveElement(a *world.Actor) model.Element {
	if a == nil || a.IsMob() {
		return model.ElementNone
	}
	e.ensure(a)
	return a.Cache().Element()
}

// SyncMoveSpeed pushes the current total move speed to the actor and reports
// whether it changed.
func (e *Engine) SyncMoveSpeed(a *world.Actor) (float64, bool) {
	v := e.GetTotal(a, model.AttrMoveSpeed)
	if a == nil || v == a.MoveSpeed() {
		return v, false
	}
	a.SetMoveSpeed(v)
	return v, true
}

// ResetHealth sets a's health to its total max health.
func (e *Engine) ResetHealth(a *world.Actor) {
	if a == nil {
		return
	}
	a.SetHealth(e.GetTotal(a, model.AttrMaxHealth))
}

// Snapshot returns every total attribute of a, indexed by attribute.
func (e *Engine) Snapshot(a *world.Actor) [model.AttrCount]float64 {
	var out [model.AttrCount]float64
	for _, attr := range model.Attributes() {
		out[attr] = e.GetTotal(a, attr)
	}
	return out
}

func (e *Engine) mobValue(a *world.Actor, attr model.Attribute) float64 {
	if e.mobs == nil {
		return 0
	}
	s, ok := e.mobs.Stats(a.ID())
	if !ok {
		return 0
	}
	return s[attr]
}

// baseline injects the platform constants. Move speed is cached as a fraction
// of the walking speed.
func (e *Engine) baseline(attr model.Attribute, v float64) float64 {
	switch attr {
	case model.AttrMaxHealth:
		return v + e.cfg.MaxHealthBaseline
	case model.AttrMoveSpeed:
		return e.cfg.MoveSpeedBaseline * (1 + v)
	}
	return v
}

func (e *Engine) clamp(attr model.Attribute, v float64) float64 {
	switch attr {
	case model.AttrMaxHealth:
		return max(v, 1)
	case model.AttrMoveSpeed:
		return min(max(v, 0), 1)
	}
	return v
}

func (e *Engine) ensure(a *world.Actor) {
	if a.Cache().Computed() {
		return
	}
	a.Cache().Store(e.aggregate(a))
	slog.Debug("attributes recomputed", "actor", a.ID(), "recomputes", a.Cache().Recomputes())
}

// aggregate runs one recompute pass: active item stats, cumulative set
// tiers, race bonus, then each percent key applied once to its flat key.
func (e *Engine) aggregate(a *world.Actor) world.Aggregate {
	var (
		agg       world.Aggregate
		setCounts = make(map[string]int)
		heldElem  model.Element
	)

	for _, c := range e.resolver.Evaluate(a) {
		if !c.Status.IsActive() {
			continue
		}
		for attr, v := range c.Item.Stats {
			if attr.Valid() {
				agg.Values[attr] += v
			}
		}
		if c.Item.SetID != "" {
			setCounts[c.Item.SetID]++
		}
		agg.Passives = append(agg.Passives, c.Item.Passives...)

		if c.Item.Element == model.ElementNone {
			continue
		}
		if c.Item.Type == model.ItemTypeElement && agg.Element == model.ElementNone {
			agg.Element = c.Item.Element
		}
		if c.Slot == a.ActiveSlot() && heldElem == model.ElementNone {
			heldElem = c.Item.Element
		}
	}
	if agg.Element == model.ElementNone {
		agg.Element = heldElem
	}

	// Sorted so float sums and passive order do not depend on map iteration.
	if e.sets != nil {
		for _, id := range slices.Sorted(maps.Keys(setCounts)) {
			stats, passives := e.sets.Bonus(id, setCounts[id])
			for attr, v := range stats {
				if attr.Valid() {
					agg.Values[attr] += v
				}
			}
			agg.Passives = append(agg.Passives, passives...)
		}
	}

	if e.races != nil {
		scalar, attrs := e.races.Bonus(a.Race(), a.Level())
		for _, attr := range attrs {
			if attr.Valid() {
				agg.Values[attr] += scalar
			}
		}
	}

	for _, attr := range model.Attributes() {
		pk, ok := attr.PercentKey()
		if !ok {
			continue
		}
		if p := agg.Values[pk]; p != 0 {
			agg.Values[attr] *= 1 + p
		}
	}

	return agg
}
