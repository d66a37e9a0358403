package models

import "github.com/google/uuid"

// DuplicateGroup is one transient duplicate-report group: every contact in
// ids shares the same key value. Groups only exist inside a query response.
type DuplicateGroup struct {
	Key   string      `json:"key"`
	Value string      `json:"value"`
	Count int         `json:"count"`
	IDs   []uuid.UUID `json:"ids"`
}

// DuplicateGroupsResponse is the paginated duplicate-report shape.
type DuplicateGroupsResponse struct {
	Key   string           `json:"key"`
	Items []DuplicateGroup `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

// DuplicateItemsResponse returns the member records of one group.
type DuplicateItemsResponse struct {
	Key   string    `json:"key"`
	Value string    `json:"value"`
	Items []Contact `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
}

// ContactListResponse is the paginated contact-browsing shape.
type ContactListResponse struct {
	Items []Contact `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
}

// SnapshotListResponse is the paginated snapshot-metadata listing.
type SnapshotListResponse struct {
	Items []SnapshotMeta `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// SnapshotItemsResponse replays one page of a snapshot's records in their
// originally captured order. Total reflects the snapshot size at capture
// time, so callers can detect records deleted since the export.
type SnapshotItemsResponse struct {
	SnapshotID uuid.UUID `json:"snapshot_id"`
	Fields     []string  `json:"fields"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Items      []Contact `json:"items"`
}

// ActivityListResponse is the paginated audit-trail listing.
type ActivityListResponse struct {
	Items []Activity `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
}

// ActorCount pairs an actor name with an event count.
type ActorCount struct {
	Actor string `json:"actor"`
	Count int    `json:"count"`
}

// ActionCount pairs an action label with an event count.
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// AdminStatsResponse is the dashboard summary shape.
type AdminStatsResponse struct {
	Totals           StatsTotals    `json:"totals"`
	RecentActivities []Activity     `json:"recent_activities"`
	RecentExports    []SnapshotMeta `json:"recent_exports"`
	TopActors        []ActorCount   `json:"top_actors"`
	ActionBreakdown  []ActionCount  `json:"action_breakdown"`
}

// StatsTotals holds whole-table counts for the dashboard.
type StatsTotals struct {
	Contacts   int64 `json:"contacts"`
	Activities int64 `json:"activities"`
	Exports    int64 `json:"exports"`
}
