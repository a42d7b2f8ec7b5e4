package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "avtag"

var repoLabels = []string{"repository", "path"}

// PrometheusRecorder implements Recorder using Prometheus gauges. Gauges rather
// than counters because every run starts a fresh process.
type PrometheusRecorder struct {
	reg             *prom.Registry
	newTags         *prom.GaugeVec
	repoUp          *prom.GaugeVec
	listingDuration *prom.GaugeVec
	catalogEntries  prom.Gauge
	runDuration     prom.Gauge
	repositories    prom.Gauge
	failed          prom.Gauge
	lastRun         prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		newTags: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "repository_new_tags",
			Help:      "Number of reported new tags per repository",
		}, repoLabels),
		repoUp: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "repository_up",
			Help:      "Whether tag listing for the repository succeeded (1) or failed (0)",
		}, repoLabels),
		listingDuration: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "repository_listing_duration_seconds",
			Help:      "Duration of remote and local tag listing per repository",
		}, repoLabels),
		catalogEntries: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Number of packages in the version catalog",
		}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the whole run",
		}),
		repositories: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "repositories",
			Help:      "Number of configured repositories",
		}),
		failed: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "repositories_failed",
			Help:      "Number of repositories whose tags could not be listed",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.newTags, pr.repoUp, pr.listingDuration, pr.catalogEntries,
		pr.runDuration, pr.repositories, pr.failed, pr.lastRun)
	return pr
}

func (p *PrometheusRecorder) ObserveRepository(repo, path string, d time.Duration, newTags int, result ResultLabel) {
	if p == nil {
		return
	}
	p.listingDuration.WithLabelValues(repo, path).Set(d.Seconds())
	if result == ResultFailed {
		p.repoUp.WithLabelValues(repo, path).Set(0)
		return
	}
	p.repoUp.WithLabelValues(repo, path).Set(1)
	p.newTags.WithLabelValues(repo, path).Set(float64(newTags))
}

func (p *PrometheusRecorder) SetCatalogEntries(n int) {
	if p == nil {
		return
	}
	p.catalogEntries.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveRun(d time.Duration, repositories, failed int) {
	if p == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
	p.repositories.Set(float64(repositories))
	p.failed.Set(float64(failed))
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format. The file is replaced atomically so a collector never reads a partial file.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
