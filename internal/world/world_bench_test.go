package world

import (
	"testing"
)

// BenchmarkRegistry_Get measures sync.Map lookup of a live actor.
// Baseline expectation: ~10ns (atomic load).
func BenchmarkRegistry_Get(b *testing.B) {
	r := NewRegistry(NewObjectIDGenerator(), 0.1)
	a := r.NewPlayer("bench", 1)
	for range 1000 {
		r.NewMob("filler", 1)
	}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Get(a.ID())
	}
}

// BenchmarkRegistry_Get_Miss measures lookup of an unknown id.
func BenchmarkRegistry_Get_Miss(b *testing.B) {
	r := NewRegistry(NewObjectIDGenerator(), 0.1)
	for range 1000 {
		r.NewMob("filler", 1)
	}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = r.Get(0xFFFFFFFF)
	}
}

// BenchmarkRegistry_InvalidateAll measures a global invalidation pass.
func BenchmarkRegistry_InvalidateAll(b *testing.B) {
	r := NewRegistry(NewObjectIDGenerator(), 0.1)
	for range 1000 {
		r.NewPlayer("p", 1)
	}

	b.ReportAllocs()
	for b.Loop() {
		r.InvalidateAll()
	}
}
