package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// fetchAttemptsTotal counts individual fetch attempts by outcome.
	fetchAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "headline_crawler_fetch_attempts_total",
		Help: "The total number of page fetch attempts, labeled by outcome.",
	}, []string{"outcome"})
	// retriesTotal counts attempts after the first for a page.
	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "headline_crawler_retries_total",
		Help: "The total number of fetch retries.",
	})
	// pagesDroppedTotal counts pages abandoned after the retry budget.
	pagesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "headline_crawler_pages_dropped_total",
		Help: "The total number of pages dropped after exhausting retries.",
	})
	// headlinesTotal counts extracted headlines before deduplication.
	headlinesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "headline_crawler_headlines_total",
		Help: "The total number of headlines extracted, before deduplication.",
	})
	// inFlightFetches tracks concurrently executing pool fetches.
	inFlightFetches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "headline_crawler_in_flight_fetches",
		Help: "The number of page fetches currently executing.",
	})
)
