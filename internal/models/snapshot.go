package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot formats. Any other value is rejected before persistence.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ValidFormat reports whether format is one of the supported export formats.
func ValidFormat(format string) bool {
	return format == FormatCSV || format == FormatXLSX
}

// ExportSnapshot is an immutable capture of one export event: who exported,
// in which format, which fields, and the exact ordered list of contact ids.
// It is created once and never updated.
type ExportSnapshot struct {
	ID         uuid.UUID   `json:"id"`
	ActorID    string      `json:"actor_id"`
	ActorName  string      `json:"actor_name"`
	Format     string      `json:"format"`
	Fields     []string    `json:"fields"`
	FilterDesc string      `json:"filter_desc"`
	Total      int         `json:"total"`
	ItemIDs    []uuid.UUID `json:"item_ids"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SnapshotMeta is the listing shape for snapshots: everything except the
// (potentially large) identifier list.
type SnapshotMeta struct {
	ID         uuid.UUID `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Format     string    `json:"format"`
	Fields     []string  `json:"fields"`
	FilterDesc string    `json:"filter_desc"`
	Total      int       `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}
