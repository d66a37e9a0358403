package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"contactdb/internal/db"
)

var (
	contactsDesc = prometheus.NewDesc(
		"contactdb_contacts_total",
		"Total contact records in the store",
		nil, nil,
	)
	activitiesDesc = prometheus.NewDesc(
		"contactdb_activity_events_total",
		"Total audit events recorded",
		nil, nil,
	)
	exportsDesc = prometheus.NewDesc(
		"contactdb_export_snapshots_total",
		"Total export snapshots created",
		nil, nil,
	)
)

// TotalsCollector is a custom Prometheus collector that reads entity totals
// from the database on each scrape.
type TotalsCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *TotalsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- contactsDesc
	ch <- activitiesDesc
	ch <- exportsDesc
}

// Collect queries the database for entity totals and emits them as gauges.
func (c *TotalsCollector) Collect(ch chan<- prometheus.Metric) {
	totals, err := c.db.Totals(context.Background())
	if err != nil {
		slog.Error("failed to collect entity totals", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(contactsDesc, prometheus.GaugeValue, float64(totals.Contacts))
	ch <- prometheus.MustNewConstMetric(activitiesDesc, prometheus.GaugeValue, float64(totals.Activities))
	ch <- prometheus.MustNewConstMetric(exportsDesc, prometheus.GaugeValue, float64(totals.Exports))
}

var initOnce sync.Once

// Init registers the custom collector. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&TotalsCollector{db: database})
	})
}
