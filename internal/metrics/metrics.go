package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/fintrack/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts EMI calculations by outcome
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emi_calculations_total",
			Help: "Number of EMI calculations by outcome",
		},
		[]string{"status"},
	)

	// InvalidTerms counts rejected loan terms by field
	InvalidTerms = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emi_invalid_terms_total",
			Help: "Number of EMI requests rejected for invalid terms",
		},
		[]string{"field"},
	)

	// CacheLookups counts result cache lookups by outcome
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emi_result_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"result"},
	)

	// HistoryPurged counts calculations removed by the retention job
	HistoryPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emi_history_purged_total",
			Help: "Number of EMI history records purged by retention",
		},
	)

	// HTTPRequests observes request latency by route and status
	HTTPRequests = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Middleware records request latency under the matched mux route template
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := response.NewRecorder(w)

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		HTTPRequests.
			WithLabelValues(r.Method, route, strconv.Itoa(recorder.StatusCode)).
			Observe(time.Since(start).Seconds())
	})
}
