package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rpgcore/internal/model"
)

// ItemTemplateRepository управляет шаблонами предметов в БД.
type ItemTemplateRepository struct {
	db *pgxpool.Pool
}

// NewItemTemplateRepository creates a new ItemTemplateRepository.
func NewItemTemplateRepository(db *pgxpool.Pool) *ItemTemplateRepository {
	return &ItemTemplateRepository{db: db}
}

// Upsert inserts or replaces a template.
func (r *ItemTemplateRepository) Upsert(ctx context.Context, t *model.ItemTemplate) error {
	query := `
		INSERT INTO item_templates
			(item_id, name, item_type, weapon_kind, element, rarity, required_class,
			 min_level, set_id, fabao_slot, passives, stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (item_id) DO UPDATE SET
			name = EXCLUDED.name,
			item_type = EXCLUDED.item_type,
			weapon_kind = EXCLUDED.weapon_kind,
			element = EXCLUDED.element,
			rarity = EXCLUDED.rarity,
			required_class = EXCLUDED.required_class,
			min_level = EXCLUDED.min_level,
			set_id = EXCLUDED.set_id,
			fabao_slot = EXCLUDED.fabao_slot,
			passives = EXCLUDED.passives,
			stats = EXCLUDED.stats
	`

	passives := t.Passives
	if passives == nil {
		passives = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		t.ItemID, t.Name, t.Type.String(), t.WeaponKind, t.Element.String(), t.Rarity,
		t.RequiredClass.String(), t.MinLevel, t.SetID, t.FabaoSlot, passives, encodeStats(t.Stats),
	)
	if err != nil {
		return fmt.Errorf("upserting item template %d: %w", t.ItemID, err)
	}
	return nil
}

// LoadAll loads every template ordered by id.
func (r *ItemTemplateRepository) LoadAll(ctx context.Context) ([]*model.ItemTemplate, error) {
	query := `
		SELECT item_id, name, item_type, weapon_kind, element, rarity, required_class,
		       min_level, set_id, fabao_slot, passives, stats
		FROM item_templates
		ORDER BY item_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying item templates: %w", err)
	}
	defer rows.Close()

	result := make([]*model.ItemTemplate, 0, 64)
	for rows.Next() {
		t, err := scanItemTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item template rows: %w", err)
	}

	return result, nil
}

func scanItemTemplate(rows pgx.Rows) (*model.ItemTemplate, error) {
	var (
		t                      model.ItemTemplate
		itemType, elem, reqCls string
		passives               []string
		stats                  map[string]float64
	)
	err := rows.Scan(
		&t.ItemID, &t.Name, &itemType, &t.WeaponKind, &elem, &t.Rarity, &reqCls,
		&t.MinLevel, &t.SetID, &t.FabaoSlot, &passives, &stats,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning item template row: %w", err)
	}

	if t.Type, err = model.ParseItemType(itemType); err != nil {
		return nil, fmt.Errorf("item template %d: %w", t.ItemID, err)
	}
	if t.Element, err = model.ParseElement(elem); err != nil {
		return nil, fmt.Errorf("item template %d: %w", t.ItemID, err)
	}
	if t.RequiredClass, err = model.ParseClass(reqCls); err != nil {
		return nil, fmt.Errorf("item template %d: %w", t.ItemID, err)
	}
	if t.Stats, err = decodeStats(stats); err != nil {
		return nil, fmt.Errorf("item template %d: %w", t.ItemID, err)
	}
	if len(passives) > 0 {
		t.Passives = passives
	}
	return &t, nil
}
