package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"contactdb/internal/models"
)

// contactColumns is the standard column list for contact queries.
const contactColumns = `id, email, first_name, last_name, company, title, phone,
	address, city, state, postal_code, country, industry, employee_range, notes,
	utm_source, utm_medium, utm_campaign, utm_content, utm_term, created_at, updated_at`

func scanContactInto(row pgx.Row, c *models.Contact) error {
	return row.Scan(
		&c.ID,
		&c.Email,
		&c.FirstName,
		&c.LastName,
		&c.Company,
		&c.Title,
		&c.Phone,
		&c.Address,
		&c.City,
		&c.State,
		&c.PostalCode,
		&c.Country,
		&c.Industry,
		&c.EmployeeRange,
		&c.Notes,
		&c.UTMSource,
		&c.UTMMedium,
		&c.UTMCampaign,
		&c.UTMContent,
		&c.UTMTerm,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// scanContact scans a row into a Contact struct.
func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := scanContactInto(row, &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// scanContacts scans multiple rows into a slice of Contacts.
func scanContacts(rows pgx.Rows) ([]models.Contact, error) {
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := scanContactInto(rows, &c); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// GetContactByID retrieves a single contact.
func (d *DB) GetContactByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(d.Pool.QueryRow(ctx, query, id))
}

// ListContacts returns one page of contacts, newest first, optionally
// filtered by a case-insensitive substring match over name, email and
// company. The total is computed with the same filter.
func (d *DB) ListContacts(ctx context.Context, search string, offset, limit int) ([]models.Contact, int, error) {
	var (
		total      int
		countQuery string
		query      string
		args       []any
	)

	if search != "" {
		pattern := "%" + search + "%"
		countQuery = `SELECT COUNT(*) FROM contacts
			WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1`
		if err := d.Pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
			return nil, 0, err
		}
		query = `SELECT ` + contactColumns + ` FROM contacts
			WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1
			ORDER BY created_at DESC, id OFFSET $2 LIMIT $3`
		args = []any{pattern, offset, limit}
	} else {
		countQuery = `SELECT COUNT(*) FROM contacts`
		if err := d.Pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
			return nil, 0, err
		}
		query = `SELECT ` + contactColumns + ` FROM contacts
			ORDER BY created_at DESC, id OFFSET $1 LIMIT $2`
		args = []any{offset, limit}
	}

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// SearchContacts returns every contact matching the browse filter, newest
// first, without pagination. Used by the export path, which captures the
// full result set.
func (d *DB) SearchContacts(ctx context.Context, search string) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	args := []any{}
	if search != "" {
		query += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanContacts(rows)
}

// GetContactsByIDs fetches contacts for an identifier set. The store does
// not guarantee return order; callers that need a specific order must
// re-sort (see snapshots).
func (d *DB) GetContactsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ANY($1)`
	rows, err := d.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return scanContacts(rows)
}

// UpsertContact inserts a contact, or overwrites the oldest existing record
// with the same non-empty email. Contacts without an email are always
// inserted. The table carries no unique constraint on email, so duplicate
// emails can still accumulate and show up in the duplicate report; the
// update path only keeps re-imports from multiplying rows. Returns true
// when a new row was created.
func (d *DB) UpsertContact(ctx context.Context, c *models.Contact) (bool, error) {
	if c.Email != "" {
		update := `
			WITH target AS (
				SELECT id FROM contacts WHERE email = $1
				ORDER BY created_at, id LIMIT 1
			)
			UPDATE contacts SET
				first_name = $2,
				last_name = $3,
				company = $4,
				title = $5,
				phone = $6,
				address = $7,
				city = $8,
				state = $9,
				postal_code = $10,
				country = $11,
				industry = $12,
				employee_range = $13,
				notes = $14,
				utm_source = $15,
				utm_medium = $16,
				utm_campaign = $17,
				utm_content = $18,
				utm_term = $19,
				updated_at = NOW()
			FROM target WHERE contacts.id = target.id
			RETURNING contacts.id, contacts.created_at, contacts.updated_at
		`
		err := d.Pool.QueryRow(ctx, update,
			c.Email, c.FirstName, c.LastName, c.Company, c.Title, c.Phone,
			c.Address, c.City, c.State, c.PostalCode, c.Country, c.Industry,
			c.EmployeeRange, c.Notes,
			c.UTMSource, c.UTMMedium, c.UTMCampaign, c.UTMContent, c.UTMTerm,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, err
		}
	}

	insert := `
		INSERT INTO contacts (email, first_name, last_name, company, title, phone,
			address, city, state, postal_code, country, industry, employee_range, notes,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`
	err := d.Pool.QueryRow(ctx, insert,
		c.Email, c.FirstName, c.LastName, c.Company, c.Title, c.Phone,
		c.Address, c.City, c.State, c.PostalCode, c.Country, c.Industry,
		c.EmployeeRange, c.Notes,
		c.UTMSource, c.UTMMedium, c.UTMCampaign, c.UTMContent, c.UTMTerm,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertContact always creates a new row, even when the email already
// exists. Test seeding and manual entry use it; import uses UpsertContact.
func (d *DB) InsertContact(ctx context.Context, c *models.Contact) error {
	query := `
		INSERT INTO contacts (email, first_name, last_name, company, title, phone,
			address, city, state, postal_code, country, industry, employee_range, notes,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		c.Email, c.FirstName, c.LastName, c.Company, c.Title, c.Phone,
		c.Address, c.City, c.State, c.PostalCode, c.Country, c.Industry,
		c.EmployeeRange, c.Notes,
		c.UTMSource, c.UTMMedium, c.UTMCampaign, c.UTMContent, c.UTMTerm,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// ContactEmailExists reports whether a non-empty email is already stored.
func (d *DB) ContactEmailExists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var exists bool
	err := d.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM contacts WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// DeleteContact removes a contact by id.
func (d *DB) DeleteContact(ctx context.Context, id uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}
