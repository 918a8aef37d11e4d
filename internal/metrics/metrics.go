// Package metrics exposes Prometheus instruments for the dashboard loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Ticks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "safety_ticks_total",
		Help: "Readings classified by the dashboard loop",
	})
	ReadingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safety_readings_rejected_total",
		Help: "Readings rejected at the source boundary",
	}, []string{"reason"})
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safety_notifications_total",
		Help: "SOS notifications appended to the history",
	}, []string{"kind", "category"})
	HistoryDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "safety_sos_history_depth",
		Help: "SOS records currently held for display",
	})
	OpenIncidents = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "safety_open_incidents",
		Help: "1 while an incident is open for the category",
	}, []string{"category"})
	HazardPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safety_hazard_pushes_total",
		Help: "Remote fire hazard pushes by state",
	}, []string{"state"})
	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "safety_stream_clients",
		Help: "Connected live stream clients",
	})
	StreamDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "safety_stream_drops_total",
		Help: "Messages dropped because the broadcast queue or a client buffer was full",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
