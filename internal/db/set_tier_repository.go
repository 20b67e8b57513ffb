package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rpgcore/internal/data"
)

// SetTierRepository manages set_tiers.
type SetTierRepository struct {
	db *pgxpool.Pool
}

// NewSetTierRepository creates a new SetTierRepository.
func NewSetTierRepository(db *pgxpool.Pool) *SetTierRepository {
	return &SetTierRepository{db: db}
}

// Upsert inserts or replaces one tier of setID.
func (r *SetTierRepository) Upsert(ctx context.Context, setID string, tier data.SetTier) error {
	query := `
		INSERT INTO set_tiers (set_id, tier_count, stats, passives)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (set_id, tier_count) DO UPDATE SET stats = EXCLUDED.stats, passives = EXCLUDED.passives
	`

	passives := tier.Passives
	if passives == nil {
		passives = []string{}
	}

	if _, err := r.db.Exec(ctx, query, setID, tier.Count, encodeStats(tier.Stats), passives); err != nil {
		return fmt.Errorf("upserting set %q tier %d: %w", setID, tier.Count, err)
	}
	return nil
}

// LoadAll returns every set's tiers ordered by tier count.
func (r *SetTierRepository) LoadAll(ctx context.Context) (map[string][]data.SetTier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT set_id, tier_count, stats, passives
		FROM set_tiers
		ORDER BY set_id, tier_count
	`)
	if err != nil {
		return nil, fmt.Errorf("querying set tiers: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]data.SetTier, 8)
	for rows.Next() {
		var (
			setID    string
			tier     data.SetTier
			stats    map[string]float64
			passives []string
		)
		if err := rows.Scan(&setID, &tier.Count, &stats, &passives); err != nil {
			return nil, fmt.Errorf("scanning set tier row: %w", err)
		}
		if tier.Stats, err = decodeStats(stats); err != nil {
			return nil, fmt.Errorf("set %q tier %d: %w", setID, tier.Count, err)
		}
		if len(passives) > 0 {
			tier.Passives = passives
		}
		result[setID] = append(result[setID], tier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating set tier rows: %w", err)
	}

	return result, nil
}
