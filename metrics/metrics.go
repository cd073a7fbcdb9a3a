package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mweagle/gometropolis/sampling"
)

const namespace = "metropolis"

// Collector records sampling runs in a private registry. It implements
// sampling.Observer and is safe for concurrent use by every lane.
type Collector struct {
	registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	proposals *prometheus.CounterVec
	samples   prometheus.Counter
	duration  prometheus.Histogram
}

var _ sampling.Observer = (*Collector)(nil)

// NewCollector creates the collectors and registers them with a new
// registry. constLabels are attached to every series.
func NewCollector(constLabels prometheus.Labels) (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "runs_total",
			Help:        "Number of sampling runs by status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "proposals_total",
			Help:        "Number of evaluated proposals by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "samples_total",
			Help:        "Number of samples requested by completed runs",
			ConstLabels: constLabels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "run_duration_seconds",
			Help:        "Wall clock time of sampling runs",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	for _, eachCollector := range []prometheus.Collector{
		c.runs,
		c.proposals,
		c.samples,
		c.duration,
	} {
		if err := c.registry.Register(eachCollector); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return c, nil
}

func (c *Collector) ProposalEvaluated(accepted bool) {
	if accepted {
		c.proposals.WithLabelValues("accepted").Inc()
		return
	}
	c.proposals.WithLabelValues("rejected").Inc()
}

func (c *Collector) RunCompleted(status sampling.StatusCode, samples int, elapsed time.Duration) {
	c.runs.WithLabelValues(status.String()).Inc()
	c.samples.Add(float64(samples))
	c.duration.Observe(elapsed.Seconds())
}

// Registry exposes the private registry, for example to an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the current values in the node exporter textfile
// format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
