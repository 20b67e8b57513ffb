package model

import "fmt"

// Attribute identifies one combat attribute.
// The set is closed: data files may only reference names from attributeInfos.
type Attribute int8

const (
	AttrPhysDamage Attribute = iota
	AttrPhysDamagePercent
	AttrMagicDamage
	AttrMagicDamagePercent
	AttrPhysDefense
	AttrPhysDefensePercent
	AttrMagicDefense
	AttrMagicDefensePercent
	AttrCritRate
	AttrCritDamage
	AttrArmorPen
	AttrMagicPen
	AttrLifeSteal
	AttrMaxHealth
	AttrMaxHealthPercent
	AttrMoveSpeed // cached as a fraction of the walking baseline
	AttrKnockbackResist
	AttrCooldownReduction

	AttrCount // total attribute count
)

// attributeInfo — метаданные атрибута.
type attributeInfo struct {
	name      string
	percent   bool
	percentOf Attribute // valid only when percent is true
}

var attributeInfos = [AttrCount]attributeInfo{
	AttrPhysDamage:          {name: "phys_damage"},
	AttrPhysDamagePercent:   {name: "phys_damage_percent", percent: true, percentOf: AttrPhysDamage},
	AttrMagicDamage:         {name: "magic_damage"},
	AttrMagicDamagePercent:  {name: "magic_damage_percent", percent: true, percentOf: AttrMagicDamage},
	AttrPhysDefense:         {name: "phys_defense"},
	AttrPhysDefensePercent:  {name: "phys_defense_percent", percent: true, percentOf: AttrPhysDefense},
	AttrMagicDefense:        {name: "magic_defense"},
	AttrMagicDefensePercent: {name: "magic_defense_percent", percent: true, percentOf: AttrMagicDefense},
	AttrCritRate:            {name: "crit_rate"},
	AttrCritDamage:          {name: "crit_damage"},
	AttrArmorPen:            {name: "armor_pen"},
	AttrMagicPen:            {name: "magic_pen"},
	AttrLifeSteal:           {name: "life_steal"},
	AttrMaxHealth:           {name: "max_health"},
	AttrMaxHealthPercent:    {name: "max_health_percent", percent: true, percentOf: AttrMaxHealth},
	AttrMoveSpeed:           {name: "move_speed"},
	AttrKnockbackResist:     {name: "knockback_resist"},
	AttrCooldownReduction:   {name: "cooldown_reduction"},
}

// percentKeys maps a flat attribute to its percent counterpart (built once in init).
var percentKeys [AttrCount]Attribute

func init() {
	for i := range percentKeys {
		percentKeys[i] = -1
	}
	for a, info := range attributeInfos {
		if info.percent {
			percentKeys[info.percentOf] = Attribute(a)
		}
	}
}

// Valid reports whether a is a registered attribute.
func (a Attribute) Valid() bool {
	return a >= 0 && a < AttrCount
}

// String returns the configuration name of the attribute.
func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Attribute(%d)", int8(a))
	}
	return attributeInfos[a].name
}

// IsPercent reports whether the attribute is a percent modifier of a flat attribute.
func (a Attribute) IsPercent() bool {
	return a.Valid() && attributeInfos[a].percent
}

// PercentOf returns the flat attribute a percent attribute modifies.
func (a Attribute) PercentOf() (Attribute, bool) {
	if !a.IsPercent() {
		return 0, false
	}
	return attributeInfos[a].percentOf, true
}

// PercentKey returns the percent counterpart of a flat attribute, if any.
func (a Attribute) PercentKey() (Attribute, bool) {
	if !a.Valid() || percentKeys[a] < 0 {
		return 0, false
	}
	return percentKeys[a], true
}

// Attributes returns every registered attribute in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, AttrCount)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}

// ParseAttribute resolves a configuration name to an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	for a, info := range attributeInfos {
		if info.name == name {
			return Attribute(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// Stats is a flat attribute → value map. Nil is a valid empty map.
type Stats map[Attribute]float64

// Clone returns an independent copy.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge adds every value of other into s.
func (s Stats) Merge(other Stats) {
	for k, v := range other {
		s[k] += v
	}
}
