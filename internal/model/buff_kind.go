package model

import "fmt"

// BuffKind identifies a temporary modifier. At most one instance per kind per actor.
type BuffKind int8

const (
	BuffMight BuffKind = iota
	BuffArcana
	BuffFortify
	BuffVitality
	BuffPrecision
	BuffFerocity
	BuffSunder
	BuffBloodthirst
	BuffHaste
	BuffSlow
	BuffRoot
	BuffFocus
	BuffSteadfast

	BuffKindCount
)

type buffKindInfo struct {
	name       string
	attributes []Attribute
	movement   bool
}

var buffKindInfos = [BuffKindCount]buffKindInfo{
	BuffMight:       {name: "might", attributes: []Attribute{AttrPhysDamage}},
	BuffArcana:      {name: "arcana", attributes: []Attribute{AttrMagicDamage}},
	BuffFortify:     {name: "fortify", attributes: []Attribute{AttrPhysDefense, AttrMagicDefense}},
	BuffVitality:    {name: "vitality", attributes: []Attribute{AttrMaxHealth}},
	BuffPrecision:   {name: "precision", attributes: []Attribute{AttrCritRate}},
	BuffFerocity:    {name: "ferocity", attributes: []Attribute{AttrCritDamage}},
	BuffSunder:      {name: "sunder", attributes: []Attribute{AttrArmorPen, AttrMagicPen}},
	BuffBloodthirst: {name: "bloodthirst", attributes: []Attribute{AttrLifeSteal}},
	BuffHaste:       {name: "haste", attributes: []Attribute{AttrMoveSpeed}, movement: true},
	BuffSlow:        {name: "slow", attributes: []Attribute{AttrMoveSpeed}, movement: true},
	BuffRoot:        {name: "root", attributes: []Attribute{AttrMoveSpeed}, movement: true},
	BuffFocus:       {name: "focus", attributes: []Attribute{AttrCooldownReduction}},
	BuffSteadfast:   {name: "steadfast", attributes: []Attribute{AttrKnockbackResist}},
}

// Valid reports whether k is a registered buff kind.
func (k BuffKind) Valid() bool { return k >= 0 && k < BuffKindCount }

func (k BuffKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return buffKindInfos[k].name
}

// Affects reports whether the buff kind modifies attribute a.
func (k BuffKind) Affects(a Attribute) bool {
	if !k.Valid() {
		return false
	}
	for _, attr := range buffKindInfos[k].attributes {
		if attr == a {
			return true
		}
	}
	return false
}

// Attributes returns the attributes modified by the buff kind.
func (k BuffKind) Attributes() []Attribute {
	if !k.Valid() {
		return nil
	}
	return buffKindInfos[k].attributes
}

// AffectsMovement reports whether removal of the buff must restore the movement baseline.
func (k BuffKind) AffectsMovement() bool {
	return k.Valid() && buffKindInfos[k].movement
}

// ParseBuffKind resolves a configuration name to a BuffKind.
func ParseBuffKind(name string) (BuffKind, error) {
	for k, info := range buffKindInfos {
		if info.name == name {
			return BuffKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBuffKind, name)
}
