package db

import (
	"context"

	"contactdb/internal/models"
	"contactdb/internal/validation"
)

// compositeValueExpr synthesizes the composite grouping value. It must stay
// in sync with validation.CompositeValue.
const compositeValueExpr = `first_name || '|' || last_name || '|' || company`

// compositeNonEmpty excludes records whose synthesized key would be the
// all-empty sentinel, which would otherwise form one meaningless mega-group
// of blank records.
const compositeNonEmpty = `NOT (first_name = '' AND last_name = '' AND company = '')`

// groupQuery builds the grouping SELECT body for a key spec. The column
// name comes from the validated allow-list, never from raw request input.
func groupQuery(spec validation.KeySpec) (valueExpr, where string) {
	if spec.Composite {
		return compositeValueExpr, compositeNonEmpty
	}
	return spec.Column, spec.Column + ` <> ''`
}

// ListDuplicateGroups returns one page of duplicate groups for the key
// spec: records sharing a key value, groups of fewer than two members
// discarded, ordered by member count descending. The value tiebreak keeps
// pagination deterministic.
func (d *DB) ListDuplicateGroups(ctx context.Context, spec validation.KeySpec, offset, limit int) ([]models.DuplicateGroup, error) {
	valueExpr, where := groupQuery(spec)

	query := `
		SELECT ` + valueExpr + ` AS value, COUNT(*) AS members, ARRAY_AGG(id ORDER BY created_at, id) AS ids
		FROM contacts
		WHERE ` + where + `
		GROUP BY 1
		HAVING COUNT(*) > 1
		ORDER BY members DESC, value ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.DuplicateGroup
	for rows.Next() {
		g := models.DuplicateGroup{Key: spec.Key}
		if err := rows.Scan(&g.Value, &g.Count, &g.IDs); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// CountDuplicateGroups returns the total number of qualifying groups for
// the key spec, independent of pagination. Best effort relative to
// ListDuplicateGroups: the two queries run without a shared store snapshot.
func (d *DB) CountDuplicateGroups(ctx context.Context, spec validation.KeySpec) (int, error) {
	valueExpr, where := groupQuery(spec)

	query := `
		SELECT COUNT(*) FROM (
			SELECT ` + valueExpr + ` AS value
			FROM contacts
			WHERE ` + where + `
			GROUP BY 1
			HAVING COUNT(*) > 1
		) AS groups
	`

	var total int
	if err := d.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListGroupMembers returns one page of the records matching a group's key
// value, with an independently computed total. The total is not taken from
// the grouping call because the store may have changed in between.
func (d *DB) ListGroupMembers(ctx context.Context, spec validation.KeySpec, value string, offset, limit int) ([]models.Contact, int, error) {
	var (
		where    string
		args     []any
		pageArgs []any
	)

	if spec.Composite {
		// Malformed values degrade to empty parts rather than failing.
		first, last, company := validation.SplitComposite(value)
		where = `first_name = $1 AND last_name = $2 AND company = $3`
		args = []any{first, last, company}
		pageArgs = []any{first, last, company, offset, limit}
	} else {
		where = spec.Column + ` = $1`
		args = []any{value}
		pageArgs = []any{value, offset, limit}
	}

	var total int
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offsetPos, limitPos := "$2", "$3"
	if spec.Composite {
		offsetPos, limitPos = "$4", "$5"
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE ` + where +
		` ORDER BY created_at, id OFFSET ` + offsetPos + ` LIMIT ` + limitPos

	rows, err := d.Pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}
