package model

// Element — элементальный тег атаки, снаряда или метки на цели.
type Element int8

const (
	ElementNone Element = iota
	ElementMetal
	ElementWood
	ElementWater
	ElementFire
	ElementEarth
)

var elementNames = []string{"none", "metal", "wood", "water", "fire", "earth"}

func (e Element) String() string { return nameOf(elementNames, e) }

// ParseElement resolves a configuration name to an Element.
func ParseElement(name string) (Element, error) {
	return parseName[Element](elementNames, name, ErrUnknownElement)
}

// ReactionKind is the category of effect an elemental reaction produces.
type ReactionKind int8

const (
	ReactionNone ReactionKind = iota
	ReactionBonusDamage
	ReactionCrowdControl
	ReactionCleanse
	ReactionShieldAmplify
	ReactionBuffGrant
)

var reactionNames = []string{"none", "bonus_damage", "crowd_control", "cleanse", "shield_amplify", "buff_grant"}

func (k ReactionKind) String() string { return nameOf(reactionNames, k) }

// ParseReactionKind resolves a configuration name to a ReactionKind.
func ParseReactionKind(name string) (ReactionKind, error) {
	return parseName[ReactionKind](reactionNames, name, ErrUnknownReaction)
}
