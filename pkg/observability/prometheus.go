package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Datum outcomes used as the "outcome" label.
const (
	OutcomeGenerated = "generated"
	OutcomeSkipped   = "skipped"
)

// PrometheusHooks implements GenerationHooks and RenderHooks with Prometheus
// collectors registered on its own registry.
type PrometheusHooks struct {
	reg *prometheus.Registry

	batchAttempts  prometheus.Counter
	batchDuration  prometheus.Histogram
	placementTries prometheus.Histogram
	gridShrinks    prometheus.Counter
	datums         *prometheus.CounterVec
	renderBytes    *prometheus.HistogramVec
	renderFailures *prometheus.CounterVec
}

// NewPrometheusHooks registers the generation collectors on reg.
func NewPrometheusHooks(reg *prometheus.Registry) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		reg: reg,
		batchAttempts: f.NewCounter(prometheus.CounterOpts{
			Name: "gridtower_batch_attempts_total",
			Help: "Total batches drawn and handed to the packer",
		}),
		batchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridtower_batch_duration_seconds",
			Help:    "Time spent in the batch retry loop per datum",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}),
		placementTries: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridtower_placement_attempts",
			Help:    "Random positions tried per successful packing",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		gridShrinks: f.NewCounter(prometheus.CounterOpts{
			Name: "gridtower_grid_shrinks_total",
			Help: "Total shrink steps applied to grids during packing",
		}),
		datums: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridtower_datums_total",
			Help: "Datums by outcome",
		}, []string{"outcome"}),
		renderBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridtower_render_bytes",
			Help:    "Rendered artifact size in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB to 16MiB
		}, []string{"format"}),
		renderFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridtower_render_failures_total",
			Help: "Render failures by format",
		}, []string{"format"}),
	}
}

func (h *PrometheusHooks) OnBatchAttempt(context.Context, int, int, int) {
	h.batchAttempts.Inc()
}

func (h *PrometheusHooks) OnPlacement(_ context.Context, _ int, positions, shrinks int) {
	h.placementTries.Observe(float64(positions))
	h.gridShrinks.Add(float64(shrinks))
}

func (h *PrometheusHooks) OnBatchComplete(_ context.Context, _ int, _ int, d time.Duration, _ error) {
	h.batchDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnDatumGenerated(context.Context, int) {
	h.datums.WithLabelValues(OutcomeGenerated).Inc()
}

func (h *PrometheusHooks) OnDatumSkipped(context.Context, int, error) {
	h.datums.WithLabelValues(OutcomeSkipped).Inc()
}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, size int, _ time.Duration, err error) {
	if err != nil {
		h.renderFailures.WithLabelValues(format).Inc()
		return
	}
	h.renderBytes.WithLabelValues(format).Observe(float64(size))
}

// Gatherer exposes the underlying registry.
func (h *PrometheusHooks) Gatherer() prometheus.Gatherer { return h.reg }

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.reg)
}
