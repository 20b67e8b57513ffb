package subclass

// berserker trades health for damage: damage grows with missing health,
// life-steal grows with effective seconds at a rate tiered by health.
var berserker = Strategy{
	ModifyAttackDamage: func(ctx Context, v float64) float64 {
		return v * (1 + ctx.missingHealth())
	},
	ModifyLifeSteal: func(ctx Context, v float64) float64 {
		return v + berserkerLifeStealRate(ctx.HealthFraction)*ctx.EffectiveSeconds()
	},
}

// berserkerLifeStealRate returns the per-second life-steal rate for a health fraction.
func berserkerLifeStealRate(healthFraction float64) float64 {
	switch {
	case healthFraction < 0.3:
		return 0.02
	case healthFraction < 0.6:
		return 0.01
	default:
		return 0.005
	}
}

// bulwark hardens while holding position.
var bulwark = Strategy{
	ModifyDefense: func(ctx Context, v float64) float64 {
		return v * (1 + 0.01*ctx.EffectiveSeconds())
	},
	ModifyMaxHealth: func(ctx Context, v float64) float64 {
		return v * (1 + 0.005*ctx.EffectiveSeconds())
	},
	OnMobTarget: func(ctx Context) float64 {
		return 1 + 0.1*ctx.EffectiveSeconds()
	},
}

// marksman ignores a share of the target's knockback resistance, 100% at the cap.
var marksman = Strategy{
	OnShoot: func(ctx Context, hit *Hit) {
		if ignore := ctx.Saturation(); ignore > hit.KnockbackIgnore {
			hit.KnockbackIgnore = ignore
		}
	},
}

// windwalker gains speed and momentum while moving, and draws less attention.
var windwalker = Strategy{
	ModifyMoveSpeed: func(ctx Context, v float64) float64 {
		return v * (1 + 0.02*ctx.EffectiveSeconds())
	},
	OnAttack: func(ctx Context, hit *Hit) {
		hit.DamageMultiplier *= 1 + 0.02*ctx.EffectiveSeconds()
	},
	OnMobTarget: func(ctx Context) float64 {
		return 1 - 0.05*ctx.EffectiveSeconds()
	},
}
