package web

import (
	"context"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productview_renders_total",
		Help: "The total number of rendered product views, by format",
	}, []string{"format"})
	emptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "productview_empty_results_total",
		Help: "The total number of views where no product matched",
	})
	viewMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "productview_mutations_total",
		Help: "The total number of filter and sort changes, by action",
	}, []string{"action"})
	pipelineSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "productview_pipeline_seconds",
		Help:    "Time spent filtering and sorting one view",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
	sessionsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "productview_sessions",
		Help: "The number of live view sessions",
	})
)

// timingMetric is a Server-Timing entry that is a no-op when the request
// carries no timing header.
type timingMetric struct {
	metric *servertiming.Metric
	start  time.Time
}

// startTiming starts a Server-Timing metric named name.
func startTiming(ctx context.Context, name, desc string) *timingMetric {
	m := &timingMetric{start: time.Now()}
	if timing := servertiming.FromContext(ctx); timing != nil {
		m.metric = timing.NewMetric(name).WithDesc(desc).Start()
	}
	return m
}

// Stop ends the metric and returns the elapsed time.
func (m *timingMetric) Stop() time.Duration {
	if m.metric != nil {
		m.metric.Stop()
	}
	return time.Since(m.start)
}
