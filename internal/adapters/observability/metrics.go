package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "scout", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scout", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	ReviewsCollected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "scout", Name: "reviews_collected_total", Help: "Reviews fetched across all businesses."},
	)
	Extractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "scout", Name: "extractions_total", Help: "Per-review extraction outcomes."},
		[]string{"outcome"}, // outcome: ok|empty|failed
	)
	ExtractionRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "scout", Name: "extraction_retries_total", Help: "Retried extraction attempts."},
	)
)

// Serve starts the metrics listener when addr is non-empty. A single-shot
// run usually leaves it off; it exists for long supervised runs.
func Serve(addr string) {
	if addr == "" {
		return // disabled
	}
	reg := InitRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExternalRequests, ExternalLatency, ReviewsCollected, Extractions, ExtractionRetries)
	return reg
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveExtraction(outcome string) { // outcome: ok|empty|failed
	Extractions.WithLabelValues(outcome).Inc()
}
