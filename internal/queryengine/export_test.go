package queryengine

import "github.com/prometheus/client_golang/prometheus"

// Accessors for the external test package.

func MetricsPolls(m *Metrics) prometheus.Counter { return m.polls }

func MetricsExecutions(m *Metrics) *prometheus.CounterVec { return m.executions }
