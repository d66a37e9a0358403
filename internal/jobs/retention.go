package jobs

import (
	"context"
	"log"
	"time"

	"contactdb/internal/db"
)

// Retention prunes audit events past the configured age in the background.
type Retention struct {
	db       *db.DB
	interval time.Duration
	maxAge   time.Duration
}

// NewRetention creates a new retention pruner.
func NewRetention(database *db.DB, interval, maxAge time.Duration) *Retention {
	return &Retention{
		db:       database,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start begins the background pruning loop.
func (r *Retention) Start(ctx context.Context) {
	log.Printf("Activity retention started (interval: %v, maxAge: %v)", r.interval, r.maxAge)

	// Run immediately on start
	r.prune(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Activity retention stopped")
			return
		case <-ticker.C:
			r.prune(ctx)
		}
	}
}

func (r *Retention) prune(ctx context.Context) {
	cutoff := time.Now().Add(-r.maxAge)
	removed, err := r.db.PruneActivities(ctx, cutoff)
	if err != nil {
		log.Printf("Activity retention: prune failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Activity retention: pruned %d events older than %v", removed, cutoff.Format(time.RFC3339))
	}
}
