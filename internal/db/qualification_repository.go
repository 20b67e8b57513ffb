package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QualificationRepository manages item_qualifications.
type QualificationRepository struct {
	db *pgxpool.Pool
}

// NewQualificationRepository creates a new QualificationRepository.
func NewQualificationRepository(db *pgxpool.Pool) *QualificationRepository {
	return &QualificationRepository{db: db}
}

// Unlock records that actorID may use itemID. Idempotent.
func (r *QualificationRepository) Unlock(ctx context.Context, actorID uint32, itemID int32) error {
	query := `
		INSERT INTO item_qualifications (actor_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT (actor_id, item_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, int64(actorID), itemID); err != nil {
		return fmt.Errorf("unlocking item %d for actor %d: %w", itemID, actorID, err)
	}
	return nil
}

// LoadByActor returns the unlocked item ids of actorID.
func (r *QualificationRepository) LoadByActor(ctx context.Context, actorID uint32) ([]int32, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id FROM item_qualifications WHERE actor_id = $1 ORDER BY item_id`,
		int64(actorID))
	if err != nil {
		return nil, fmt.Errorf("querying qualifications for actor %d: %w", actorID, err)
	}
	defer rows.Close()

	result := make([]int32, 0, 8)
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning qualification row: %w", err)
		}
		result = append(result, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating qualification rows: %w", err)
	}

	return result, nil
}

// ReplaceTx replaces every qualification of actorID within a transaction.
func (r *QualificationRepository) ReplaceTx(ctx context.Context, tx pgx.Tx, actorID uint32, itemIDs []int32) error {
	if _, err := tx.Exec(ctx, `DELETE FROM item_qualifications WHERE actor_id = $1`, int64(actorID)); err != nil {
		return fmt.Errorf("deleting qualifications for actor %d: %w", actorID, err)
	}

	if len(itemIDs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(itemIDs))
	for _, id := range itemIDs {
		rows = append(rows, []any{int64(actorID), id})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"item_qualifications"},
		[]string{"actor_id", "item_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting qualifications for actor %d: %w", actorID, err)
	}

	slog.Debug("saved qualifications", "actorID", actorID, "count", len(itemIDs))
	return nil
}
