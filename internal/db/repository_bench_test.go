package db

import (
	"context"
	"testing"
)

// BenchmarkQualificationRepository_ReplaceTx measures DELETE + CopyFrom of 100 unlocks.
func BenchmarkQualificationRepository_ReplaceTx(b *testing.B) {
	d := setupTestDB(b)
	ctx := context.Background()
	repo := NewQualificationRepository(d.Pool())

	ids := make([]int32, 100)
	for i := range ids {
		ids[i] = int32(1000 + i)
	}

	b.ReportAllocs()
	for b.Loop() {
		tx, err := d.Pool().Begin(ctx)
		if err != nil {
			b.Fatalf("begin: %v", err)
		}
		if err := repo.ReplaceTx(ctx, tx, 1, ids); err != nil {
			b.Fatalf("ReplaceTx: %v", err)
		}
		if err := tx.Commit(ctx); err != nil {
			b.Fatalf("commit: %v", err)
		}
	}
}

// BenchmarkQualificationRepository_LoadByActor measures a single-actor read.
func BenchmarkQualificationRepository_LoadByActor(b *testing.B) {
	d := setupTestDB(b)
	ctx := context.Background()
	repo := NewQualificationRepository(d.Pool())
	for i := range 50 {
		if err := repo.Unlock(ctx, 1, int32(i)); err != nil {
			b.Fatalf("Unlock: %v", err)
		}
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := repo.LoadByActor(ctx, 1); err != nil {
			b.Fatalf("LoadByActor: %v", err)
		}
	}
}
