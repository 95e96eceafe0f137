package command

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Invocation results recorded by Metrics.
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultNotFound = "not_found"
)

// Metrics collects dispatch statistics. A nil *Metrics records nothing.
type Metrics struct {
	invocations *prometheus.CounterVec
	statuses    *prometheus.CounterVec
	depth       prometheus.Histogram
}

// NewMetrics creates the dispatcher collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "econ",
			Subsystem: "command",
			Name:      "invocations_total",
			Help:      "Command invocations by result.",
		}, []string{"result"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "econ",
			Subsystem: "command",
			Name:      "failures_total",
			Help:      "Failed handler runs by returned status.",
		}, []string{"status"}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "econ",
			Subsystem: "command",
			Name:      "depth",
			Help:      "Tree depth of the handler that ran.",
			Buckets:   prometheus.LinearBuckets(0, 1, 5),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.invocations, m.statuses, m.depth} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Invocations returns the counter for result.
func (m *Metrics) Invocations(result string) prometheus.Counter {
	return m.invocations.WithLabelValues(result)
}

func (m *Metrics) observeRun(status, depth int) {
	if m == nil {
		return
	}
	m.depth.Observe(float64(depth))
	if status == StatusOK {
		m.invocations.WithLabelValues(ResultOK).Inc()
		return
	}
	m.invocations.WithLabelValues(ResultFailed).Inc()
	m.statuses.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *Metrics) observeNotFound() {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(ResultNotFound).Inc()
}
