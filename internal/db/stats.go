package db

import (
	"context"

	"contactdb/internal/models"
)

// Totals returns whole-table counts for the dashboard and metrics.
func (d *DB) Totals(ctx context.Context) (models.StatsTotals, error) {
	var t models.StatsTotals
	query := `
		SELECT
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM activities),
			(SELECT COUNT(*) FROM export_snapshots)
	`
	if err := d.Pool.QueryRow(ctx, query).Scan(&t.Contacts, &t.Activities, &t.Exports); err != nil {
		return models.StatsTotals{}, err
	}
	return t, nil
}
