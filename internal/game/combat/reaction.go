package combat

import (
	"log/slog"

	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/world"
)

// ReactionProvider is the elemental reaction table.
type ReactionProvider interface {
	Lookup(mark, incoming model.Element) (model.Reaction, bool)
}

// react evaluates the victim's mark against the incoming element.
// One mark per victim: a matching entry consumes it, anything else overwrites it.
// Returns the adjusted damage.
func (r *Resolver) react(attacker, victim *world.Actor, incoming model.Element, damage float64, res *Result) float64 {
	if incoming == model.ElementNone {
		return damage
	}

	mark := victim.Mark()
	if mark == model.ElementNone || r.reactions == nil {
		victim.SetMark(incoming)
		return damage
	}

	reaction, ok := r.reactions.Lookup(mark, incoming)
	if !ok {
		victim.SetMark(incoming)
		return damage
	}

	victim.SetMark(model.ElementNone)
	res.Reaction = &reaction

	switch reaction.Kind {
	case model.ReactionBonusDamage:
		bonus := damage * reaction.DamageBonus
		if reaction.DamageMultiplier > 0 {
			damage *= reaction.DamageMultiplier
		}
		damage += bonus

	case model.ReactionCrowdControl:
		victim.Buffs().Add(reaction.Buff, reaction.BuffDuration, reaction.BuffValue, reaction.BuffMultiplier)
		res.emit(Effect{Kind: EffectStatus, ActorID: victim.ID(), Buff: reaction.Buff, Duration: reaction.BuffDuration})

	case model.ReactionCleanse:
		victim.Buffs().Clear()
		res.emit(Effect{Kind: EffectCleanse, ActorID: victim.ID()})

	case model.ReactionShieldAmplify:
		res.emit(Effect{Kind: EffectShield, ActorID: attacker.ID(), Amount: max(damage, 0) * reaction.ShieldFraction})

	case model.ReactionBuffGrant:
		attacker.Buffs().Add(reaction.Buff, reaction.BuffDuration, reaction.BuffValue, reaction.BuffMultiplier)
		res.emit(Effect{Kind: EffectBuff, ActorID: attacker.ID(), Buff: reaction.Buff, Duration: reaction.BuffDuration})
	}

	slog.Debug("elemental reaction",
		"reaction", reaction.Name,
		"kind", reaction.Kind,
		"mark", mark,
		"incoming", incoming,
		"victim", victim.ID())

	return damage
}
