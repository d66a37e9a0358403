package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"contactdb/internal/models"
)

// CreateUploadReport persists the outcome summary of one import.
func (d *DB) CreateUploadReport(ctx context.Context, r *models.UploadReport) error {
	if r.DupInFile == nil {
		r.DupInFile = []models.EmailCount{}
	}
	if r.DupExisting == nil {
		r.DupExisting = []string{}
	}
	query := `
		INSERT INTO upload_reports (actor_id, actor_name, filename, processed, inserted, updated, dup_in_file, dup_existing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		r.ActorID, r.ActorName, r.Filename, r.Processed, r.Inserted,
		r.Updated, r.DupInFile, r.DupExisting,
	).Scan(&r.ID, &r.CreatedAt)
}

// GetUploadReport retrieves an upload report by id.
func (d *DB) GetUploadReport(ctx context.Context, id uuid.UUID) (*models.UploadReport, error) {
	query := `SELECT id, actor_id, actor_name, filename, processed, inserted, updated, dup_in_file, dup_existing, created_at
		FROM upload_reports WHERE id = $1`

	var r models.UploadReport
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&r.ID, &r.ActorID, &r.ActorName, &r.Filename, &r.Processed,
		&r.Inserted, &r.Updated, &r.DupInFile, &r.DupExisting, &r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
