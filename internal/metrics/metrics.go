package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemoteFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dexview_remote_fetches_total",
		Help: "Remote catalog requests by kind (index, detail, categories) and outcome.",
	}, []string{"kind", "outcome"})

	RemoteFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dexview_remote_fetch_duration_seconds",
		Help:    "Time spent on one remote catalog request, retries included.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"kind"})

	AssemblyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dexview_assembly_total",
		Help: "Listing assemblies by outcome (ok, partial, failed).",
	}, []string{"outcome"})

	CatalogEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dexview_catalog_entries",
		Help: "Entries in the current assembled catalog.",
	})

	Favorites = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dexview_favorites",
		Help: "Number of favorited item IDs.",
	})

	FavoriteTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dexview_favorite_toggles_total",
		Help: "Favorite toggles by resulting action (added, removed, failed).",
	}, []string{"action"})
)
