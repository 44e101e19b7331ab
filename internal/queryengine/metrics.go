package queryengine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"reportapi/internal/model"
)

// Metrics records query engine activity. A nil *Metrics records nothing.
type Metrics struct {
	executions *prometheus.CounterVec
	duration   prometheus.Histogram
	polls      prometheus.Counter
}

// NewMetrics registers the query engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "athena_query_executions_total",
				Help: "Query executions by final state.",
			},
			[]string{"state"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "athena_query_wait_seconds",
			Help:    "Time spent waiting for query executions to reach a final state.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "athena_query_polls_total",
			Help: "Status polls issued against the query engine.",
		}),
	}
	for _, c := range []prometheus.Collector{m.executions, m.duration, m.polls} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observePoll() {
	if m == nil {
		return
	}
	m.polls.Inc()
}

func (m *Metrics) observeDone(state string, started time.Time) {
	if m == nil {
		return
	}
	m.executions.WithLabelValues(state).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

// stateLabel maps errors that never reached a terminal state onto a label.
func stateLabel(exec model.QueryExecution, timedOut bool) string {
	if timedOut {
		return "TIMEOUT"
	}
	if exec.State == "" {
		return "ERROR"
	}
	return string(exec.State)
}
