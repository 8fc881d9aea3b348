package postgres

import (
	"context"
	"fmt"
)

type DeviceRepo struct{ db DBTX }

// Upsert relies on the (device_name, category_id) unique constraint. The
// no-op DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *DeviceRepo) Upsert(ctx context.Context, name string, categoryID int) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO device (device_name, category_id)
		VALUES ($1, $2)
		ON CONFLICT (device_name, category_id)
		DO UPDATE SET device_name = EXCLUDED.device_name
		RETURNING device_id
	`, name, categoryID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert device: %w", mapErr(err))
	}
	return id, nil
}

func (r *DeviceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM device`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count devices: %w", err)
	}
	return n, nil
}
