package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	clientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_client_requests_total",
			Help: "Total number of requests sent to the storefront API.",
		},
		[]string{"code", "method", "path"},
	)
	clientRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_client_request_duration_seconds",
			Help:    "Duration of storefront API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	clientRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_client_requests_in_flight",
			Help: "Current number of storefront API requests awaiting a response.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

type roundTripper struct {
	next http.RoundTripper
}

// RoundTripper records count, latency and in-flight gauges for every
// request that goes through next.
func RoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &roundTripper{next: next}
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {

	start := time.Now()
	clientRequestsInFlight.Inc()

	pathPattern := PathPattern(req.URL.Path)
	code := "error"

	defer func() {
		clientRequestsTotal.WithLabelValues(code, req.Method, pathPattern).Inc()
		clientRequestsDuration.WithLabelValues(req.Method, pathPattern).Observe(time.Since(start).Seconds())
		clientRequestsInFlight.Dec()
	}()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	code = strconv.Itoa(resp.StatusCode)

	return resp, nil
}

// PathPattern replaces numeric path segments with {id} to keep label
// cardinality bounded.
func PathPattern(path string) string {
	segments := strings.Split(path, "/")

	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}

	return strings.Join(segments, "/")
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
