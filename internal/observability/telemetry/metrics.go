package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	ActiveTrips = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scootme_active_trips",
		Help: "Number of trips currently in progress",
	})

	TripsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scootme_trips_completed_total",
		Help: "Total number of completed trips",
	})

	FareChargedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scootme_fare_charged_egp_total",
		Help: "Total fare charged in EGP",
	})

	PaymentCallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scootme_payment_callbacks_total",
		Help: "Total payment gateway callbacks processed",
	}, []string{"status"})

	// Infrastructure metrics
	RoutingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scootme_routing_requests_total",
		Help: "Total routing service requests",
	}, []string{"status"})

	LocationUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scootme_location_updates_total",
		Help: "Total live location samples processed",
	})
)
