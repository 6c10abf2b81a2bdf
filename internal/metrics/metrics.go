// Package metrics exposes build statistics as Prometheus collectors.
package metrics

import (
	"fmt"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector records what builds produce. Each Collector owns its registry so
// several can live in one process.
type Collector struct {
	Registry *prometheus.Registry

	entries  prometheus.Counter
	records  *prometheus.CounterVec
	keys     prometheus.Histogram
	maxDepth prometheus.Gauge
	builds   *prometheus.CounterVec
}

// New creates a Collector with its metrics registered.
func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		entries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lorehelper_entries_visited_total",
			Help: "Total number of author entries visited",
		}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lorehelper_records_emitted_total",
			Help: "Total number of lorebook records emitted",
		}, []string{"forced"}),
		keys: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lorehelper_record_keys",
			Help:    "Number of keys per emitted record",
			Buckets: []float64{0, 1, 2, 4, 8, 16},
		}),
		maxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lorehelper_tree_depth_max",
			Help: "Deepest entry seen in the last build",
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lorehelper_builds_total",
			Help: "Total number of builds by outcome",
		}, []string{"project", "outcome"}),
	}
	c.Registry.MustRegister(c.entries, c.records, c.keys, c.maxDepth, c.builds)
	return c
}

// Hooks returns builder hooks that feed the collector. Call it once per build;
// the depth gauge restarts with every call.
func (c *Collector) Hooks() builder.Hooks {
	c.maxDepth.Set(0)
	deepest := 0
	return builder.Hooks{
		OnEntry: func(e *builder.EntryEvent) {
			c.entries.Inc()
			if e.Depth > deepest {
				deepest = e.Depth
				c.maxDepth.Set(float64(deepest))
			}
		},
		OnRecord: func(e *builder.RecordEvent) {
			c.records.WithLabelValues(fmt.Sprint(e.Record.ForceActivation)).Inc()
			c.keys.Observe(float64(len(e.Record.Keys)))
		},
	}
}

// ObserveBuild counts a finished build.
func (c *Collector) ObserveBuild(project string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.builds.WithLabelValues(project, outcome).Inc()
}

// WriteFile writes the metrics in the node-exporter textfile format.
func (c *Collector) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
