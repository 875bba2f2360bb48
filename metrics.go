package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	// Labels: "success", "timeout", "exhausted"
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "witch_search_total",
		Help: "Plan searches by outcome",
	}, []string{"result"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "witch_search_duration_seconds",
		Help:    "Wall time spent in one plan search",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 1},
	})

	searchIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "witch_search_iterations",
		Help:    "Nodes dequeued per plan search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	planLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "witch_plan_length",
		Help:    "Actions in successful plans",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})

	decisionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "witch_decisions_total",
		Help: "Commands played by the turn policy",
	}, []string{"source"})
)

func observeSearch(res Result, elapsed time.Duration) {
	searchDuration.Observe(elapsed.Seconds())
	switch r := res.(type) {
	case Success:
		searchTotal.WithLabelValues("success").Inc()
		searchIterations.Observe(float64(r.Iterations))
		planLength.Observe(float64(len(r.Actions)))
	case Failure:
		searchTotal.WithLabelValues(string(r.Reason)).Inc()
		searchIterations.Observe(float64(r.Iterations))
	}
}

// serveMetrics exposes the default registry on addr until the process exits.
func serveMetrics(addr string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
}
