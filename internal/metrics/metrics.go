// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the application's Prometheus metrics.
type Collector struct {
	registrations    prometheus.Counter
	logins           *prometheus.CounterVec
	propertiesListed prometheus.Counter
	bookingsCreated  prometheus.Counter
	bookingsRejected *prometheus.CounterVec
}

// NewCollector creates the metric set and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casavia_registrations_total",
			Help: "Total number of successful user registrations.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casavia_logins_total",
			Help: "Total number of login attempts by result.",
		}, []string{"result"}),
		propertiesListed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casavia_properties_listed_total",
			Help: "Total number of properties added to the catalog.",
		}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "casavia_bookings_created_total",
			Help: "Total number of bookings appended to the ledger.",
		}),
		bookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casavia_bookings_rejected_total",
			Help: "Total number of rejected booking requests by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(c.registrations, c.logins, c.propertiesListed, c.bookingsCreated, c.bookingsRejected)
	return c
}

// RecordRegistration counts a successful registration.
func (c *Collector) RecordRegistration() { c.registrations.Inc() }

// RecordLogin counts a login attempt with its result ("ok" or "failed").
func (c *Collector) RecordLogin(result string) { c.logins.WithLabelValues(result).Inc() }

// RecordPropertyListed counts a new catalog entry.
func (c *Collector) RecordPropertyListed() { c.propertiesListed.Inc() }

// RecordBookingCreated counts a successful reservation.
func (c *Collector) RecordBookingCreated() { c.bookingsCreated.Inc() }

// RecordBookingRejected counts a rejected reservation by reason.
func (c *Collector) RecordBookingRejected(reason string) {
	c.bookingsRejected.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler serving the registry's metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
