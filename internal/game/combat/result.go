package combat

import (
	"time"

	"github.com/udisondev/rpgcore/internal/model"
)

// Outcome summarizes how a damage event ended.
type Outcome int8

const (
	OutcomeApplied   Outcome = iota // damage > 0 was dealt
	OutcomeNoDamage                 // pipeline ran (or short-circuited) with zero damage
	OutcomeCancelled                // rejected by the gate before Snapshot
)

var outcomeNames = [...]string{"applied", "no_damage", "cancelled"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// EffectKind identifies a side effect the caller must apply or mirror.
type EffectKind int8

const (
	EffectPassive   EffectKind = iota // passive trigger for the skill subsystem
	EffectHeal                        // heal ActorID by Amount
	EffectShield                      // grant ActorID a shield worth Amount
	EffectStatus                      // crowd-control buff applied to ActorID
	EffectBuff                        // beneficial buff applied to ActorID
	EffectCleanse                     // all buffs removed from ActorID
	EffectInterrupt                   // channeled action of ActorID interrupted
)

var effectNames = [...]string{"passive", "heal", "shield", "status", "buff", "cleanse", "interrupt"}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectNames) {
		return "unknown"
	}
	return effectNames[k]
}

// Effect is one side effect of a resolved damage event.
type Effect struct {
	Kind    EffectKind
	ActorID uint32

	Trigger  model.PassiveTrigger // EffectPassive
	Amount   float64              // EffectHeal, EffectShield
	Buff     model.BuffKind       // EffectStatus, EffectBuff
	Duration time.Duration        // EffectStatus, EffectBuff
}

// Result is the outcome of one damage event. Effects are in application order.
type Result struct {
	Outcome Outcome
	Crit    bool

	// Snapshot is the attacker snapshot after the crit stage.
	Snapshot Snapshot
	Damage   float64

	// Reaction is set when an elemental reaction fired.
	Reaction *model.Reaction
	// KnockbackMultiplier scales the knockback the host applies to the victim.
	KnockbackMultiplier float64

	Effects []Effect

	// Stages lists the pipeline stages entered, in order.
	Stages []string
}

// Heal returns the total heal granted to actorID.
func (r *Result) Heal(actorID uint32) float64 {
	var sum float64
	for _, e := range r.Effects {
		if e.Kind == EffectHeal && e.ActorID == actorID {
			sum += e.Amount
		}
	}
	return sum
}

// Triggers returns the passive triggers in emission order.
func (r *Result) Triggers() []model.PassiveTrigger {
	var out []model.PassiveTrigger
	for _, e := range r.Effects {
		if e.Kind == EffectPassive {
			out = append(out, e.Trigger)
		}
	}
	return out
}

func (r *Result) emit(e Effect) {
	r.Effects = append(r.Effects, e)
}
