package model

import "time"

// Reaction is one entry of the elemental reaction table, keyed by (mark, incoming).
type Reaction struct {
	Name string
	Kind ReactionKind

	// DamageMultiplier scales the mitigated damage (1 = unchanged, 0 = unset).
	DamageMultiplier float64
	// DamageBonus adds DamageBonus × mitigated damage.
	DamageBonus float64

	// Buff applied by crowd-control (to the victim) and buff-grant (to the attacker).
	Buff           BuffKind
	BuffValue      float64
	BuffMultiplier bool
	BuffDuration   time.Duration

	// ShieldFraction of the final damage granted to the attacker as a shield.
	ShieldFraction float64
}

// ReactionKey is the (mark, incoming element) pair a reaction is keyed by.
type ReactionKey struct {
	Mark     Element
	Incoming Element
}
