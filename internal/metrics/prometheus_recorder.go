package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitelinks"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	linkResults      *prom.CounterVec
	documentDuration prom.Histogram
	buildDuration    prom.Histogram
	buildOutcome     *prom.CounterVec
	indexSize        prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		linkResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_results_total",
			Help:      "Markdown link candidates by outcome",
		}, []string{"result"}),
		documentDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time spent linkifying and writing one document",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build pass duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		indexSize: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "link_index_entries",
			Help:      "Documents registered in the link index of the last build",
		}),
	}
	reg.MustRegister(pr.linkResults, pr.documentDuration, pr.buildDuration, pr.buildOutcome, pr.indexSize)
	return pr
}

func (p *PrometheusRecorder) IncLinkResult(result LinkResult) {
	if p == nil {
		return
	}
	p.linkResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetIndexSize(n int) {
	if p == nil {
		return
	}
	p.indexSize.Set(float64(n))
}
