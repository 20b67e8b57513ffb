package combat

import (
	"math"
	"testing"
)

func TestMitigate_ZeroDefenseIsIdentity(t *testing.T) {
	for _, dmg := range []float64{0.5, 1, 20, 1e6} {
		if got := Mitigate(dmg, 0, 0); got != dmg {
			t.Errorf("Mitigate(%v, 0, 0) = %v, want %v", dmg, got, dmg)
		}
	}
}

func TestMitigate_PositiveDefenseReducesButNeverZeroes(t *testing.T) {
	for _, def := range []float64{0.001, 1, 100, 1e4, 1e9} {
		got := Mitigate(100, def, 0)
		if got >= 100 {
			t.Errorf("defense %v: got %v, want < 100", def, got)
		}
		if got <= 0 {
			t.Errorf("defense %v: got %v, want > 0", def, got)
		}
	}
}

func TestMitigate_HundredDefenseHalves(t *testing.T) {
	if got := Mitigate(40, 100, 0); got != 20 {
		t.Fatalf("Mitigate(40, 100, 0) = %v, want 20", got)
	}
}

func TestEffectiveDefense(t *testing.T) {
	tests := []struct {
		name     string
		def, pen float64
		want     float64
	}{
		{"no pen", 100, 0, 100},
		{"half pen", 100, 0.5, 50},
		{"full pen", 100, 1, 0},
		{"over pen never negative", 100, 1.7, 0},
		{"negative defense", -30, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveDefense(tt.def, tt.pen); got != tt.want {
				t.Errorf("EffectiveDefense(%v, %v) = %v, want %v", tt.def, tt.pen, got, tt.want)
			}
		})
	}

	// Over-penetration must not amplify damage.
	if got := Mitigate(50, 100, 3); got != 50 {
		t.Errorf("Mitigate with pen 3 = %v, want 50", got)
	}
}

func TestMitigate_NonPositiveDamage(t *testing.T) {
	if got := Mitigate(-5, 10, 0); got != 0 {
		t.Errorf("negative damage mitigated to %v, want 0", got)
	}
	if got := Mitigate(0, 0, 0); got != 0 {
		t.Errorf("zero damage mitigated to %v, want 0", got)
	}
}

func TestSnapshot_WithCritReturnsCopy(t *testing.T) {
	orig := Snapshot{Phys: 20, Magic: 10, CritRate: 1, CritDamage: 0.5}
	crit := orig.WithCrit()

	if orig.Phys != 20 || orig.Magic != 10 {
		t.Fatalf("original mutated: %+v", orig)
	}
	if crit.Phys != 40 || crit.Magic != 20 {
		t.Errorf("crit = %+v, want phys 40 magic 20", crit)
	}
	if crit.CritRate != orig.CritRate || crit.LifeSteal != orig.LifeSteal {
		t.Errorf("non-damage fields changed: %+v", crit)
	}
	if math.IsNaN(crit.Raw()) || crit.Raw() != 60 {
		t.Errorf("Raw = %v, want 60", crit.Raw())
	}
}
