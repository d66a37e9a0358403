package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"contactdb/internal/models"
)

const activityColumns = `id, actor_id, actor_name, action, method, route, status, meta, ip, user_agent, created_at`

func scanActivities(rows pgx.Rows) ([]models.Activity, error) {
	defer rows.Close()

	var items []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(
			&a.ID, &a.ActorID, &a.ActorName, &a.Action, &a.Method,
			&a.Route, &a.Status, &a.Meta, &a.IP, &a.UserAgent, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// InsertActivity appends one audit event. Events are write-once and never
// updated.
func (d *DB) InsertActivity(ctx context.Context, a *models.Activity) error {
	if a.Meta == nil {
		a.Meta = map[string]any{}
	}
	query := `
		INSERT INTO activities (actor_id, actor_name, action, method, route, status, meta, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		a.ActorID, a.ActorName, a.Action, a.Method, a.Route, a.Status,
		a.Meta, a.IP, a.UserAgent,
	).Scan(&a.ID, &a.CreatedAt)
}

// ListActivities returns one page of audit events, newest first. The search
// term matches action, route and method case-insensitively; actor filters
// by exact actor name.
func (d *DB) ListActivities(ctx context.Context, search, actor string, offset, limit int) ([]models.Activity, int, error) {
	where := ``
	args := []any{}

	switch {
	case search != "" && actor != "":
		where = `WHERE actor_name = $1 AND (action ILIKE $2 OR route ILIKE $2 OR method ILIKE $2)`
		args = []any{actor, "%" + search + "%"}
	case actor != "":
		where = `WHERE actor_name = $1`
		args = []any{actor}
	case search != "":
		where = `WHERE action ILIKE $1 OR route ILIKE $1 OR method ILIKE $1`
		args = []any{"%" + search + "%"}
	}

	var total int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM activities `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	positions := [2]string{"$1", "$2"}
	switch len(args) {
	case 1:
		positions = [2]string{"$2", "$3"}
	case 2:
		positions = [2]string{"$3", "$4"}
	}
	query := `SELECT ` + activityColumns + ` FROM activities ` + where +
		` ORDER BY created_at DESC, id OFFSET ` + positions[0] + ` LIMIT ` + positions[1]
	args = append(args, offset, limit)

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := scanActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// RecentActivities returns the most recent audit events.
func (d *DB) RecentActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY created_at DESC, id LIMIT $1`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanActivities(rows)
}

// TopActors returns the actors with the most audit events since the cutoff.
func (d *DB) TopActors(ctx context.Context, since time.Time, limit int) ([]models.ActorCount, error) {
	query := `
		SELECT actor_name, COUNT(*) AS events
		FROM activities
		WHERE created_at >= $1
		GROUP BY actor_name
		ORDER BY events DESC, actor_name
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ActorCount
	for rows.Next() {
		var a models.ActorCount
		if err := rows.Scan(&a.Actor, &a.Count); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// ActionBreakdown returns per-action event counts since the cutoff.
func (d *DB) ActionBreakdown(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	query := `
		SELECT action, COUNT(*) AS events
		FROM activities
		WHERE created_at >= $1
		GROUP BY action
		ORDER BY events DESC, action
	`
	rows, err := d.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ActionCount
	for rows.Next() {
		var a models.ActionCount
		if err := rows.Scan(&a.Action, &a.Count); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// PruneActivities deletes audit events older than the cutoff and returns
// how many were removed.
func (d *DB) PruneActivities(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM activities WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
