package db

import (
	"context"
	"testing"
	"time"

	"contactdb/internal/models"
)

func seedActivity(t *testing.T, d *DB, actor, action string) models.Activity {
	t.Helper()
	a := models.Activity{
		ActorID:   actor,
		ActorName: actor,
		Action:    action,
		Method:    "GET",
		Route:     "/api/test",
		Status:    200,
	}
	if err := d.InsertActivity(context.Background(), &a); err != nil {
		t.Fatalf("InsertActivity() error = %v", err)
	}
	return a
}

func TestListActivities_Filters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	seedActivity(t, db, "alice", "LIST_CONTACTS")
	seedActivity(t, db, "alice", "EXPORT_CONTACTS")
	seedActivity(t, db, "bob", "LIST_CONTACTS")

	_, total, err := db.ListActivities(ctx, "", "", 0, 10)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if total != 3 {
		t.Errorf("unfiltered total = %d, want 3", total)
	}

	_, total, err = db.ListActivities(ctx, "", "alice", 0, 10)
	if err != nil {
		t.Fatalf("ListActivities(actor) error = %v", err)
	}
	if total != 2 {
		t.Errorf("actor-filtered total = %d, want 2", total)
	}

	_, total, err = db.ListActivities(ctx, "export", "", 0, 10)
	if err != nil {
		t.Fatalf("ListActivities(search) error = %v", err)
	}
	if total != 1 {
		t.Errorf("search-filtered total = %d, want 1", total)
	}

	items, total, err := db.ListActivities(ctx, "list_contacts", "bob", 0, 10)
	if err != nil {
		t.Fatalf("ListActivities(search+actor) error = %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("combined filter: total=%d len=%d, want 1/1", total, len(items))
	}
}

func TestTopActorsAndActionBreakdown(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	seedActivity(t, db, "alice", "LIST_CONTACTS")
	seedActivity(t, db, "alice", "LIST_CONTACTS")
	seedActivity(t, db, "alice", "EXPORT_CONTACTS")
	seedActivity(t, db, "bob", "LIST_CONTACTS")

	since := time.Now().Add(-time.Hour)

	actors, err := db.TopActors(ctx, since, 5)
	if err != nil {
		t.Fatalf("TopActors() error = %v", err)
	}
	if len(actors) != 2 {
		t.Fatalf("got %d actors, want 2", len(actors))
	}
	if actors[0].Actor != "alice" || actors[0].Count != 3 {
		t.Errorf("top actor = %q (%d), want alice (3)", actors[0].Actor, actors[0].Count)
	}

	breakdown, err := db.ActionBreakdown(ctx, since)
	if err != nil {
		t.Fatalf("ActionBreakdown() error = %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("got %d actions, want 2", len(breakdown))
	}
	if breakdown[0].Action != "LIST_CONTACTS" || breakdown[0].Count != 3 {
		t.Errorf("top action = %q (%d), want LIST_CONTACTS (3)", breakdown[0].Action, breakdown[0].Count)
	}

	// A cutoff in the future sees nothing.
	none, err := db.TopActors(ctx, time.Now().Add(time.Hour), 5)
	if err != nil {
		t.Fatalf("TopActors(future) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d actors for future cutoff, want 0", len(none))
	}
}

func TestPruneActivities(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	seedActivity(t, db, "alice", "LIST_CONTACTS")
	seedActivity(t, db, "bob", "LIST_CONTACTS")

	// Nothing is older than a cutoff in the past.
	removed, err := db.PruneActivities(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("PruneActivities() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}

	removed, err = db.PruneActivities(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("PruneActivities() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	totals, err := db.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	if totals.Activities != 0 {
		t.Errorf("activities total = %d, want 0 after prune", totals.Activities)
	}
}
