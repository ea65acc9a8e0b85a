package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Insight outcomes recorded by RecordInsight.
const (
	OutcomeDemo    = "demo"
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
)

var (
	insightRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ravi",
		Subsystem: "insight",
		Name:      "requests_total",
		Help:      "Safety insight requests by outcome.",
	}, []string{"outcome"})
	insightDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ravi",
		Subsystem: "insight",
		Name:      "request_duration_seconds",
		Help:      "Latency of remote text-generation calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	})
	dashboardViews = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ravi",
		Subsystem: "dashboard",
		Name:      "views_total",
		Help:      "Dashboard renders by selected view.",
	}, []string{"view"})
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ravi",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route template and status code.",
	}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(insightRequests, insightDuration, dashboardViews, httpRequests)
}

// RecordInsight counts one insight request with the given outcome.
func RecordInsight(outcome string) {
	insightRequests.WithLabelValues(outcome).Inc()
}

// ObserveInsightLatency records the duration of a remote call.
func ObserveInsightLatency(d time.Duration) {
	insightDuration.Observe(d.Seconds())
}

// RecordDashboardView counts a dashboard render for view.
func RecordDashboardView(view string) {
	dashboardViews.WithLabelValues(view).Inc()
}

// RecordHTTPRequest counts a served request.
func RecordHTTPRequest(route string, code int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
