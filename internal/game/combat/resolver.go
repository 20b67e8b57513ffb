// Package combat resolves one damage event between two actors.
//
// Stages run strictly in order: Snapshot, Crit, Mitigation, Reaction, Apply.
// Only the gate (before Snapshot) can cancel an event; a non-positive raw
// snapshot short-circuits to zero damage.
package combat

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/looplab/fsm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/udisondev/rpgcore/internal/game/subclass"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/telemetry"
	"github.com/udisondev/rpgcore/internal/world"
)

// Stage names of the resolution state machine.
const (
	StageIdle      = "idle"
	StageSnapshot  = "snapshot"
	StageCrit      = "crit"
	StageMitigated = "mitigated"
	StageReacted   = "reacted"
	StageApplied   = "applied"
)

const eventShortCircuit = "short_circuit"

var stageEvents = fsm.Events{
	{Name: StageSnapshot, Src: []string{StageIdle}, Dst: StageSnapshot},
	{Name: StageCrit, Src: []string{StageSnapshot}, Dst: StageCrit},
	{Name: StageMitigated, Src: []string{StageCrit}, Dst: StageMitigated},
	{Name: StageReacted, Src: []string{StageMitigated}, Dst: StageReacted},
	{Name: StageApplied, Src: []string{StageReacted}, Dst: StageApplied},
	{Name: eventShortCircuit, Src: []string{StageSnapshot}, Dst: StageApplied},
}

// StatReader is the attribute read path (player aggregation or mob stat block).
type StatReader interface {
	GetTotal(a *world.Actor, attr model.Attribute) float64
	ActivePassives(a *world.Actor) []string
	ActiveElement(a *world.Actor) model.Element
	SubclassContext(a *world.Actor) subclass.Context
}

// Gate decides whether attacker may damage victim at all (faction, ownership).
type Gate func(attacker, victim *world.Actor) bool

// Attack describes one damage event.
type Attack struct {
	Attacker *world.Actor
	Victim   *world.Actor

	// Element carried by the attack or projectile; ElementNone uses the
	// attacker's active element item.
	Element model.Element
	// Projectile marks ranged attacks (runs the on_shoot hooks).
	Projectile bool
}

// Resolver orchestrates damage events.
type Resolver struct {
	stats     StatReader
	reactions ReactionProvider
	gate      Gate
	rng       func() float64
	tracer    trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGate installs the pre-snapshot cancellation gate.
func WithGate(g Gate) Option {
	return func(r *Resolver) { r.gate = g }
}

// WithRand overrides the crit roll source (values in [0,1)).
func WithRand(fn func() float64) Option {
	return func(r *Resolver) { r.rng = fn }
}

// WithTracer overrides the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) { r.tracer = t }
}

// NewResolver creates a resolver. reactions may be nil (no reactions, marks still tracked).
func NewResolver(stats StatReader, reactions ReactionProvider, opts ...Option) *Resolver {
	r := &Resolver{
		stats:     stats,
		reactions: reactions,
		rng:       rand.Float64,
		tracer:    telemetry.Tracer("combat"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs one damage event. It never fails: a rejected event reports
// OutcomeCancelled, everything after Snapshot runs to completion.
func (r *Resolver) Resolve(ctx context.Context, atk Attack) Result {
	res := Result{KnockbackMultiplier: 1}

	if atk.Attacker == nil || atk.Victim == nil || ctx.Err() != nil {
		res.Outcome = OutcomeCancelled
		return res
	}
	if r.gate != nil && !r.gate(atk.Attacker, atk.Victim) {
		res.Outcome = OutcomeCancelled
		return res
	}

	ctx, span := r.tracer.Start(ctx, "combat.resolve", trace.WithAttributes(
		attribute.Int64("attacker", int64(atk.Attacker.ID())),
		attribute.Int64("victim", int64(atk.Victim.ID())),
		attribute.Bool("projectile", atk.Projectile),
	))
	defer span.End()
	// Stages already started must finish even if the caller gives up.
	ctx = context.WithoutCancel(ctx)

	machine := fsm.NewFSM(StageIdle, stageEvents, fsm.Callbacks{
		"enter_state": func(ctx context.Context, e *fsm.Event) {
			res.Stages = append(res.Stages, e.Dst)
			trace.SpanFromContext(ctx).AddEvent(e.Dst)
		},
	})
	step := func(event string) {
		if err := machine.Event(ctx, event); err != nil {
			slog.Warn("combat stage transition rejected", "event", event, "from", machine.Current(), "error", err)
		}
	}

	// Snapshot
	step(StageSnapshot)
	snap := r.snapshot(atk)
	if snap.Raw() <= 0 {
		step(eventShortCircuit)
		res.Snapshot = snap
		res.Outcome = OutcomeNoDamage
		span.SetAttributes(attribute.String("outcome", res.Outcome.String()))
		return res
	}

	// Crit
	step(StageCrit)
	if r.rng() < snap.CritRate {
		snap = snap.WithCrit()
		res.Crit = true
	}
	res.Snapshot = snap

	// Mitigation
	step(StageMitigated)
	victim := atk.Victim
	damage := Mitigate(snap.Phys, r.stats.GetTotal(victim, model.AttrPhysDefense), snap.ArmorPen) +
		Mitigate(snap.Magic, r.stats.GetTotal(victim, model.AttrMagicDefense), snap.MagicPen)

	// Reaction
	step(StageReacted)
	incoming := atk.Element
	if incoming == model.ElementNone {
		incoming = r.stats.ActiveElement(atk.Attacker)
	}
	damage = r.react(atk.Attacker, victim, incoming, damage, &res)

	// Apply
	step(StageApplied)
	res.Damage = max(damage, 0)
	if atk.Projectile {
		res.KnockbackMultiplier = r.knockback(atk)
	}
	r.apply(atk, &res)

	span.SetAttributes(
		attribute.Float64("damage", res.Damage),
		attribute.Bool("crit", res.Crit),
		attribute.String("outcome", res.Outcome.String()),
	)
	if res.Reaction != nil {
		span.SetAttributes(attribute.String("reaction", res.Reaction.Name))
	}
	slog.Debug("damage resolved",
		"attacker", atk.Attacker.ID(),
		"victim", victim.ID(),
		"damage", res.Damage,
		"crit", res.Crit)

	return res
}

// snapshot reads the attacker's damage components and runs the subclass
// attack hooks.
func (r *Resolver) snapshot(atk Attack) Snapshot {
	a := atk.Attacker
	snap := Snapshot{
		Phys:       r.stats.GetTotal(a, model.AttrPhysDamage),
		Magic:      r.stats.GetTotal(a, model.AttrMagicDamage),
		CritRate:   r.stats.GetTotal(a, model.AttrCritRate),
		CritDamage: r.stats.GetTotal(a, model.AttrCritDamage),
		ArmorPen:   r.stats.GetTotal(a, model.AttrArmorPen),
		MagicPen:   r.stats.GetTotal(a, model.AttrMagicPen),
		LifeSteal:  r.stats.GetTotal(a, model.AttrLifeSteal),
	}

	if a.Subclass() == model.SubclassNone {
		return snap
	}
	hit := subclass.NewHit()
	subclass.OnAttack(a.Subclass(), r.stats.SubclassContext(a), &hit)
	if hit.DamageMultiplier != 1 {
		snap = snap.scaled(hit.DamageMultiplier)
	}
	return snap
}

// knockback returns the multiplier of knockback applied to the victim:
// 1 - resist × (1 - ignore), where ignore comes from the on_shoot hook.
func (r *Resolver) knockback(atk Attack) float64 {
	resist := min(max(r.stats.GetTotal(atk.Victim, model.AttrKnockbackResist), 0), 1)

	hit := subclass.NewHit()
	if sc := atk.Attacker.Subclass(); sc != model.SubclassNone {
		subclass.OnShoot(sc, r.stats.SubclassContext(atk.Attacker), &hit)
	}
	return 1 - resist*(1-hit.KnockbackIgnore)
}

// apply emits side effects in fixed order: attacker passives, life-steal,
// victim passives, channel interrupt.
func (r *Resolver) apply(atk Attack, res *Result) {
	attacker, victim := atk.Attacker, atk.Victim
	if res.Damage > 0 {
		res.Outcome = OutcomeApplied
	} else {
		res.Outcome = OutcomeNoDamage
	}

	attackerPassives := r.stats.ActivePassives(attacker)
	if atk.Projectile {
		r.emitPassives(res, attacker.ID(), attackerPassives, model.TriggerOnShoot)
	}
	r.emitPassives(res, attacker.ID(), attackerPassives, model.TriggerOnHit)

	if ls := res.Snapshot.LifeSteal; ls > 0 && res.Damage > 0 {
		heal := math.Round(res.Damage * ls)
		if heal < 1 {
			heal = 1
		}
		res.emit(Effect{Kind: EffectHeal, ActorID: attacker.ID(), Amount: heal})
	}

	r.emitPassives(res, victim.ID(), r.stats.ActivePassives(victim), model.TriggerOnHurt)

	if res.Damage > 0 && victim.Channeling() {
		victim.SetChanneling(false)
		res.emit(Effect{Kind: EffectInterrupt, ActorID: victim.ID()})
	}
}

func (r *Resolver) emitPassives(res *Result, actorID uint32, passives []string, kind model.TriggerKind) {
	for _, id := range passives {
		res.emit(Effect{
			Kind:    EffectPassive,
			ActorID: actorID,
			Trigger: model.PassiveTrigger{ActorID: actorID, PassiveID: id, Kind: kind},
		})
	}
}

// MobTargetWeight returns the threat weight mobs assign to a (on_mob_target hook).
func (r *Resolver) MobTargetWeight(a *world.Actor) float64 {
	if a == nil {
		return 1
	}
	return subclass.MobTargetWeight(a.Subclass(), r.stats.SubclassContext(a))
}
