// Package metrics exports search statistics to Prometheus.
package metrics

import (
	"github.com/pdrpinto/gridpath"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of gridpath_searches_total.
const (
	OutcomeFound  = "found"
	OutcomeNoPath = "no_path"
)

// Recorder implements gridpath.Observer on top of Prometheus collectors.
type Recorder struct {
	searches   *prometheus.CounterVec
	expanded   prometheus.Histogram
	pathLength prometheus.Histogram
	duration   prometheus.Histogram
}

var _ gridpath.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridpath_searches_total",
				Help: "Total number of completed searches by outcome",
			},
			[]string{"outcome"},
		),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_expanded_nodes",
			Help:    "Cells expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		pathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_path_length",
			Help:    "Cells on the returned path, endpoints included",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_search_duration_seconds",
			Help:    "Wall time of a search",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	reg.MustRegister(r.searches, r.expanded, r.pathLength, r.duration)
	return r
}

// ObserveSearch records one completed search.
func (r *Recorder) ObserveSearch(stats gridpath.SearchStats) {
	outcome := OutcomeNoPath
	if stats.Found {
		outcome = OutcomeFound
		r.pathLength.Observe(float64(stats.PathLength))
	}
	r.searches.WithLabelValues(outcome).Inc()
	r.expanded.Observe(float64(stats.ExpandedNodes))
	r.duration.Observe(stats.Duration.Seconds())
}
