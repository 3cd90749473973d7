package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MissionsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "missions_submitted_total",
			Help: "Total number of missions successfully submitted",
		},
	)

	MissionApplications = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mission_applications_total",
			Help: "Total number of mission applications",
		},
	)

	PriceQuotes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_quotes_total",
			Help: "Total number of successful price calculations",
		},
	)

	PricingLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_lookup_failures_total",
			Help: "Total number of failed pricing rule lookups",
		},
	)

	TrackingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_transitions_total",
			Help: "Total number of tracking state transitions",
		},
		[]string{"action"},
	)

	priceCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "price_calculation_duration_seconds",
			Help: "Duration of price quote resolution including rule lookup",
		},
	)
)

// NewPriceCalculationTimer starts a timer for one price quote.
func NewPriceCalculationTimer() *prometheus.Timer {
	return prometheus.NewTimer(priceCalculationDuration)
}
