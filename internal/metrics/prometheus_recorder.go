package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitecfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generateDuration prom.Histogram
	emittedFiles     *prom.CounterVec
	linkFindings     *prom.CounterVec
	externalChecks   *prom.HistogramVec
	configReloads    *prom.CounterVec
	lastSuccess      prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generateDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Duration of a full generation run",
			Buckets:   prom.DefBuckets,
		}),
		emittedFiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "emitted_files_total",
			Help:      "Emitted generator files by format and result",
		}, []string{"format", "result"}),
		linkFindings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_findings_total",
			Help:      "Broken link findings by link kind and applied policy",
		}, []string{"kind", "policy"}),
		externalChecks: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "external_link_check_seconds",
			Help:      "Latency of external link verification",
			Buckets:   prom.DefBuckets,
		}, []string{"source"}),
		configReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Config reloads in watch mode by outcome",
		}, []string{"outcome"}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful generation",
		}),
	}
	reg.MustRegister(pr.generateDuration, pr.emittedFiles, pr.linkFindings, pr.externalChecks, pr.configReloads, pr.lastSuccess)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerateDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncEmittedFile(format string, result ResultLabel) {
	if p == nil {
		return
	}
	p.emittedFiles.WithLabelValues(format, string(result)).Inc()
}

func (p *PrometheusRecorder) IncLinkFinding(kind, policy string) {
	if p == nil {
		return
	}
	p.linkFindings.WithLabelValues(kind, policy).Inc()
}

func (p *PrometheusRecorder) ObserveExternalCheck(d time.Duration, cached bool) {
	if p == nil {
		return
	}
	source := "network"
	if cached {
		source = "cache"
	}
	p.externalChecks.WithLabelValues(source).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConfigReload(outcome ReloadOutcome) {
	if p == nil {
		return
	}
	p.configReloads.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetLastSuccess(t time.Time) {
	if p == nil {
		return
	}
	p.lastSuccess.Set(float64(t.Unix()))
}
