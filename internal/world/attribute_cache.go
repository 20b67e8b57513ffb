package world

import "github.com/udisondev/rpgcore/internal/model"

// AttributeCache memoizes the aggregated attributes of one actor.
//
// When Computed() is true every attribute holds its full flat+percent+set+race
// value. Buffs and subclass modifiers are never cached: they depend on live
// timers and are layered at read time.
type AttributeCache struct {
	computed bool
	values   [model.AttrCount]float64
	passives []string
	element  model.Element

	// recomputes counts Store calls; one per invalidation is the invariant.
	recomputes uint64
}

// Computed reports whether the cached values are current.
func (c *AttributeCache) Computed() bool {
	return c.computed
}

// Value returns the cached value of attr (0 when never computed).
func (c *AttributeCache) Value(attr model.Attribute) float64 {
	if !attr.Valid() {
		return 0
	}
	return c.values[attr]
}

// Passives returns the passive ids of active items and unlocked set tiers.
func (c *AttributeCache) Passives() []string {
	return c.passives
}

// Element returns the elemental tag of the active element item, if any.
func (c *AttributeCache) Element() model.Element {
	return c.element
}

// Recomputes returns how many times the cache has been filled.
func (c *AttributeCache) Recomputes() uint64 {
	return c.recomputes
}

// Aggregate is the output of one recompute pass.
type Aggregate struct {
	Values   [model.AttrCount]float64
	Passives []string
	Element  model.Element
}

// Store replaces the cached values and marks the cache computed.
// Only the aggregation pass calls this.
func (c *AttributeCache) Store(agg Aggregate) {
	c.values = agg.Values
	c.passives = agg.Passives
	c.element = agg.Element
	c.computed = true
	c.recomputes++
}

// invalidate clears the computed flag; values stay until the next Store.
func (c *AttributeCache) invalidate() {
	c.computed = false
}
