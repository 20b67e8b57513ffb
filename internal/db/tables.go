package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/udisondev/rpgcore/internal/data"
)

// Store groups the repositories backing the data tables.
type Store struct {
	db *DB

	Templates      *ItemTemplateRepository
	Instances      *ItemInstanceRepository
	Qualifications *QualificationRepository
	SetTiers       *SetTierRepository
}

// NewStore creates repositories over d's pool.
func NewStore(d *DB) *Store {
	return &Store{
		db:             d,
		Templates:      NewItemTemplateRepository(d.pool),
		Instances:      NewItemInstanceRepository(d.pool),
		Qualifications: NewQualificationRepository(d.pool),
		SetTiers:       NewSetTierRepository(d.pool),
	}
}

// Seed writes item templates and set tiers of t into the database.
func (s *Store) Seed(ctx context.Context, t *data.Tables) error {
	templates := t.Items.Templates()
	for _, tmpl := range templates {
		if err := s.Templates.Upsert(ctx, tmpl); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	var tiers int
	for _, id := range t.Sets.IDs() {
		for _, tier := range t.Sets.Tiers(id) {
			if err := s.SetTiers.Upsert(ctx, id, tier); err != nil {
				return fmt.Errorf("seeding: %w", err)
			}
			tiers++
		}
	}

	slog.Info("seeded database", "templates", len(templates), "set_tiers", tiers)
	return nil
}

// LoadInto merges persisted templates, set tiers and item instances into t.
func (s *Store) LoadInto(ctx context.Context, t *data.Tables) error {
	templates, err := s.Templates.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, tmpl := range templates {
		t.Items.AddTemplate(tmpl)
	}

	sets, err := s.SetTiers.LoadAll(ctx)
	if err != nil {
		return err
	}
	for id, tiers := range sets {
		t.Sets.Put(id, tiers)
	}

	instances, err := s.Instances.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, row := range instances {
		if err := t.Items.Register(row.Handle, row.TemplateID, row.BoundTo); err != nil {
			return fmt.Errorf("loading item instances: %w", err)
		}
	}

	slog.Info("loaded tables from database",
		"templates", len(templates),
		"sets", len(sets),
		"instances", len(instances))
	return nil
}

// LoadQualifications fills q with the persisted unlocks of actorID.
func (s *Store) LoadQualifications(ctx context.Context, q *data.Qualifications, actorID uint32) error {
	ids, err := s.Qualifications.LoadByActor(ctx, actorID)
	if err != nil {
		return err
	}
	q.Load(actorID, ids)
	return nil
}

// SaveQualifications replaces the persisted unlocks of actorID with the given item ids.
func (s *Store) SaveQualifications(ctx context.Context, actorID uint32, itemIDs []int32) error {
	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		return s.Qualifications.ReplaceTx(ctx, tx, actorID, itemIDs)
	})
	if err != nil {
		return fmt.Errorf("saving qualifications for actor %d: %w", actorID, err)
	}
	return nil
}
