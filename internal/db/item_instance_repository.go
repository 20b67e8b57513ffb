package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rpgcore/internal/model"
)

// ItemInstanceRow is one persisted item instance.
type ItemInstanceRow struct {
	Handle     model.ItemHandle
	TemplateID int32
	BoundTo    uint32
}

// ItemInstanceRepository manages item_instances (soulbinding).
type ItemInstanceRepository struct {
	db *pgxpool.Pool
}

// NewItemInstanceRepository creates a new ItemInstanceRepository.
func NewItemInstanceRepository(db *pgxpool.Pool) *ItemInstanceRepository {
	return &ItemInstanceRepository{db: db}
}

// Save inserts or replaces an instance.
func (r *ItemInstanceRepository) Save(ctx context.Context, row ItemInstanceRow) error {
	query := `
		INSERT INTO item_instances (handle, template_id, bound_to)
		VALUES ($1, $2, $3)
		ON CONFLICT (handle) DO UPDATE SET template_id = EXCLUDED.template_id, bound_to = EXCLUDED.bound_to
	`
	if _, err := r.db.Exec(ctx, query, int64(row.Handle), row.TemplateID, int64(row.BoundTo)); err != nil {
		return fmt.Errorf("saving item instance %d: %w", row.Handle, err)
	}
	return nil
}

// Bind soulbinds an instance to actorID (0 unbinds).
func (r *ItemInstanceRepository) Bind(ctx context.Context, h model.ItemHandle, actorID uint32) error {
	tag, err := r.db.Exec(ctx, `UPDATE item_instances SET bound_to = $1 WHERE handle = $2`, int64(actorID), int64(h))
	if err != nil {
		return fmt.Errorf("binding item instance %d: %w", h, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("binding item instance %d: not found", h)
	}
	return nil
}

// Delete removes an instance.
func (r *ItemInstanceRepository) Delete(ctx context.Context, h model.ItemHandle) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM item_instances WHERE handle = $1`, int64(h)); err != nil {
		return fmt.Errorf("deleting item instance %d: %w", h, err)
	}
	return nil
}

// LoadAll loads every instance ordered by handle.
func (r *ItemInstanceRepository) LoadAll(ctx context.Context) ([]ItemInstanceRow, error) {
	rows, err := r.db.Query(ctx, `SELECT handle, template_id, bound_to FROM item_instances ORDER BY handle`)
	if err != nil {
		return nil, fmt.Errorf("querying item instances: %w", err)
	}
	defer rows.Close()

	result := make([]ItemInstanceRow, 0, 64)
	for rows.Next() {
		var handle, boundTo int64
		var row ItemInstanceRow
		if err := rows.Scan(&handle, &row.TemplateID, &boundTo); err != nil {
			return nil, fmt.Errorf("scanning item instance row: %w", err)
		}
		row.Handle = model.ItemHandle(handle)
		row.BoundTo = uint32(boundTo)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item instance rows: %w", err)
	}

	return result, nil
}
