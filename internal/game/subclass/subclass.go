// Package subclass implements the continuous subclass modifiers.
//
// Every strategy is a row in a table indexed by model.Subclass; hooks a strategy
// does not define fall back to identity. All continuous bonuses are functions of
// Context.EffectiveSeconds.
package subclass

import (
	"github.com/udisondev/rpgcore/internal/model"
)

// MaxEffectiveSeconds caps the effective hold time every bonus scales with.
const MaxEffectiveSeconds = 10.0

// Context carries the live inputs a strategy may read.
type Context struct {
	HoldSeconds       float64 // time the current active item has been held
	CooldownReduction float64 // actor's total cooldown_reduction
	HealthFraction    float64 // current / max health in [0,1]
}

// EffectiveSeconds returns min(10, hold × (1 + cdr)), never negative.
func (c Context) EffectiveSeconds() float64 {
	eff := c.HoldSeconds * (1 + c.CooldownReduction)
	if eff < 0 {
		return 0
	}
	if eff > MaxEffectiveSeconds {
		return MaxEffectiveSeconds
	}
	return eff
}

// Saturation returns EffectiveSeconds scaled to [0,1].
func (c Context) Saturation() float64 {
	return c.EffectiveSeconds() / MaxEffectiveSeconds
}

// missingHealth returns 1 - HealthFraction clamped to [0,1].
func (c Context) missingHealth() float64 {
	m := 1 - c.HealthFraction
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// Hit is the per-attack scratch state the event hooks may adjust.
type Hit struct {
	// DamageMultiplier scales the attacker's raw damage components. Starts at 1.
	DamageMultiplier float64
	// KnockbackIgnore is the fraction of the victim's knockback resistance ignored, [0,1].
	KnockbackIgnore float64
}

// NewHit returns a neutral Hit.
func NewHit() Hit {
	return Hit{DamageMultiplier: 1}
}

// ValueHook transforms one attribute value.
type ValueHook func(ctx Context, v float64) float64

// Strategy is the set of hooks of one subclass. Nil hooks are identity.
type Strategy struct {
	ModifyDefense      ValueHook
	ModifyLifeSteal    ValueHook
	ModifyAttackDamage ValueHook
	ModifyMaxHealth    ValueHook
	ModifyMoveSpeed    ValueHook

	OnAttack    func(ctx Context, hit *Hit)
	OnShoot     func(ctx Context, hit *Hit)
	OnMobTarget func(ctx Context) float64 // threat weight, 1 = neutral
}

var strategies = [model.SubclassCount]Strategy{
	model.SubclassNone:       {},
	model.SubclassBerserker:  berserker,
	model.SubclassBulwark:    bulwark,
	model.SubclassMarksman:   marksman,
	model.SubclassWindwalker: windwalker,
}

// For returns the strategy of sc. Unknown subclasses get the no-op strategy.
func For(sc model.Subclass) Strategy {
	if sc < 0 || sc >= model.SubclassCount {
		return Strategy{}
	}
	return strategies[sc]
}

// Modifies reports whether attr is one of the attributes the subclass layer touches.
func Modifies(attr model.Attribute) bool {
	switch attr {
	case model.AttrPhysDefense, model.AttrMagicDefense,
		model.AttrLifeSteal, model.AttrPhysDamage,
		model.AttrMaxHealth, model.AttrMoveSpeed:
		return true
	}
	return false
}

// Modify applies the subclass hook for attr. Attributes outside the subclass
// layer pass through unchanged.
func Modify(sc model.Subclass, attr model.Attribute, ctx Context, v float64) float64 {
	s := For(sc)
	var hook ValueHook
	switch attr {
	case model.AttrPhysDefense, model.AttrMagicDefense:
		hook = s.ModifyDefense
	case model.AttrLifeSteal:
		hook = s.ModifyLifeSteal
	case model.AttrPhysDamage:
		hook = s.ModifyAttackDamage
	case model.AttrMaxHealth:
		hook = s.ModifyMaxHealth
	case model.AttrMoveSpeed:
		hook = s.ModifyMoveSpeed
	}
	if hook == nil {
		return v
	}
	return hook(ctx, v)
}

// OnAttack runs the melee/generic attack hook.
func OnAttack(sc model.Subclass, ctx Context, hit *Hit) {
	if fn := For(sc).OnAttack; fn != nil {
		fn(ctx, hit)
	}
}

// OnShoot runs the projectile hook.
func OnShoot(sc model.Subclass, ctx Context, hit *Hit) {
	if fn := For(sc).OnShoot; fn != nil {
		fn(ctx, hit)
	}
}

// MobTargetWeight returns the threat weight a mob assigns to the actor.
func MobTargetWeight(sc model.Subclass, ctx Context) float64 {
	fn := For(sc).OnMobTarget
	if fn == nil {
		return 1
	}
	w := fn(ctx)
	if w < 0 {
		return 0
	}
	return w
}
