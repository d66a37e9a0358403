package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"contactdb/internal/models"
)

const snapshotMetaColumns = `id, actor_id, actor_name, format, fields, filter_desc, total, created_at`

// CreateSnapshot persists an immutable export snapshot. The contact order
// given by the caller becomes the permanent replay order; total is fixed to
// the capture size and never recomputed.
func (d *DB) CreateSnapshot(ctx context.Context, actor models.Actor, format string, fields []string, filterDesc string, contacts []models.Contact) (*models.ExportSnapshot, error) {
	if !models.ValidFormat(format) {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	itemIDs := make([]uuid.UUID, len(contacts))
	for i := range contacts {
		itemIDs[i] = contacts[i].ID
	}
	if fields == nil {
		fields = []string{}
	}

	snap := &models.ExportSnapshot{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Format:     format,
		Fields:     fields,
		FilterDesc: filterDesc,
		Total:      len(itemIDs),
		ItemIDs:    itemIDs,
	}

	query := `
		INSERT INTO export_snapshots (actor_id, actor_name, format, fields, filter_desc, total, item_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := d.Pool.QueryRow(ctx, query,
		snap.ActorID, snap.ActorName, snap.Format, snap.Fields,
		snap.FilterDesc, snap.Total, snap.ItemIDs,
	).Scan(&snap.ID, &snap.CreatedAt)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// GetSnapshot retrieves a full snapshot, identifier list included.
func (d *DB) GetSnapshot(ctx context.Context, id uuid.UUID) (*models.ExportSnapshot, error) {
	query := `SELECT id, actor_id, actor_name, format, fields, filter_desc, total, item_ids, created_at
		FROM export_snapshots WHERE id = $1`

	var snap models.ExportSnapshot
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&snap.ID,
		&snap.ActorID,
		&snap.ActorName,
		&snap.Format,
		&snap.Fields,
		&snap.FilterDesc,
		&snap.Total,
		&snap.ItemIDs,
		&snap.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSnapshots returns one page of snapshot metadata, newest first,
// optionally filtered by actor name.
func (d *DB) ListSnapshots(ctx context.Context, actor string, offset, limit int) ([]models.SnapshotMeta, int, error) {
	var (
		total int
		query string
		args  []any
	)

	if actor != "" {
		countQuery := `SELECT COUNT(*) FROM export_snapshots WHERE actor_name = $1`
		if err := d.Pool.QueryRow(ctx, countQuery, actor).Scan(&total); err != nil {
			return nil, 0, err
		}
		query = `SELECT ` + snapshotMetaColumns + ` FROM export_snapshots
			WHERE actor_name = $1 ORDER BY created_at DESC, id OFFSET $2 LIMIT $3`
		args = []any{actor, offset, limit}
	} else {
		if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM export_snapshots`).Scan(&total); err != nil {
			return nil, 0, err
		}
		query = `SELECT ` + snapshotMetaColumns + ` FROM export_snapshots
			ORDER BY created_at DESC, id OFFSET $1 LIMIT $2`
		args = []any{offset, limit}
	}

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.SnapshotMeta
	for rows.Next() {
		var m models.SnapshotMeta
		if err := rows.Scan(&m.ID, &m.ActorID, &m.ActorName, &m.Format, &m.Fields, &m.FilterDesc, &m.Total, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// RecentSnapshots returns the most recent snapshot metadata entries.
func (d *DB) RecentSnapshots(ctx context.Context, limit int) ([]models.SnapshotMeta, error) {
	items, _, err := d.ListSnapshots(ctx, "", 0, limit)
	return items, err
}

// GetSnapshotItems replays one page of a snapshot's records in their
// originally captured order. The stored identifier list is sliced before
// querying so the fetch is bounded to one page, and the fetched records are
// re-sorted by a position map because fetch-by-id-set does not preserve
// order. Identifiers that no longer resolve are simply absent from the
// result; the snapshot's total is left to the caller to report.
func (d *DB) GetSnapshotItems(ctx context.Context, snap *models.ExportSnapshot, offset, limit int) ([]models.Contact, error) {
	if offset >= len(snap.ItemIDs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(snap.ItemIDs) {
		end = len(snap.ItemIDs)
	}
	pageIDs := snap.ItemIDs[offset:end]

	contacts, err := d.GetContactsByIDs(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	// Restore capture order.
	order := make(map[uuid.UUID]int, len(pageIDs))
	for i, id := range pageIDs {
		order[id] = i
	}
	ordered := make([]models.Contact, len(pageIDs))
	present := make([]bool, len(pageIDs))
	for i := range contacts {
		pos, ok := order[contacts[i].ID]
		if !ok {
			continue
		}
		ordered[pos] = contacts[i]
		present[pos] = true
	}

	// Compact out slots whose record was deleted after capture.
	items := ordered[:0]
	for i := range ordered {
		if present[i] {
			items = append(items, ordered[i])
		}
	}
	return items, nil
}
