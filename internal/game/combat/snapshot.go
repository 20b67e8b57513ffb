package combat

// CritBaseMultiplier is the fixed part of the critical-hit multiplier;
// the attacker's crit_damage is added on top.
const CritBaseMultiplier = 1.5

// DefenseScale is the defense value that halves incoming damage.
const DefenseScale = 100.0

// Snapshot — неизменяемый срез атакующих характеристик на момент удара.
// Crit produces a new Snapshot; nothing mutates one after construction.
type Snapshot struct {
	Phys       float64
	Magic      float64
	CritRate   float64
	CritDamage float64
	ArmorPen   float64
	MagicPen   float64
	LifeSteal  float64
}

// Raw returns the total damage before mitigation.
func (s Snapshot) Raw() float64 {
	return s.Phys + s.Magic
}

// WithCrit returns a copy with both damage components scaled by 1.5 + crit_damage.
func (s Snapshot) WithCrit() Snapshot {
	m := CritBaseMultiplier + s.CritDamage
	s.Phys *= m
	s.Magic *= m
	return s
}

// scaled returns a copy with both damage components multiplied by m.
func (s Snapshot) scaled(m float64) Snapshot {
	s.Phys *= m
	s.Magic *= m
	return s
}

// EffectiveDefense returns max(0, defense × (1 - pen)).
func EffectiveDefense(defense, pen float64) float64 {
	eff := defense * (1 - pen)
	if eff > 0 {
		return eff
	}
	return 0
}

// Mitigate applies diminishing-returns defense: damage × 100 / (100 + effective defense).
// Zero defense leaves damage unchanged; no finite defense reduces it to zero.
func Mitigate(damage, defense, pen float64) float64 {
	if damage <= 0 {
		return 0
	}
	return damage * DefenseScale / (DefenseScale + EffectiveDefense(defense, pen))
}
