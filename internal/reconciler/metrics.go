package reconciler

import (
	"sort"
	"sync"
	"time"

	"github.com/giantswarm/projectinstall/pkg/logging"
)

// Metrics counts console calls per operation.
//
// It is safe for concurrent use by the workspace workers and can be shared
// between installers (WithMetrics) to accumulate counts across watch runs.
type Metrics struct {
	mu sync.RWMutex

	operations map[Operation]*operationMetrics

	totalCalls     int64
	totalSuccesses int64
	totalFailures  int64
}

type operationMetrics struct {
	Calls         int64
	Successes     int64
	Failures      int64
	TotalDuration time.Duration
	LastCallAt    time.Time
	LastFailureAt time.Time
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: make(map[Operation]*operationMetrics),
	}
}

func (m *Metrics) getOrCreate(op Operation) *operationMetrics {
	if om, exists := m.operations[op]; exists {
		return om
	}
	om := &operationMetrics{}
	m.operations[op] = om
	return om
}

// RecordCall records one finished console call.
func (m *Metrics) RecordCall(op Operation, started time.Time, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	om := m.getOrCreate(op)
	om.Calls++
	om.TotalDuration += now.Sub(started)
	om.LastCallAt = now
	m.totalCalls++

	if err != nil {
		om.Failures++
		om.LastFailureAt = now
		m.totalFailures++
		logging.Debug("InstallerMetrics", "%s failed (failures: %d)", op, om.Failures)
		return
	}
	om.Successes++
	m.totalSuccesses++
}

// Calls returns how many times op was called.
func (m *Metrics) Calls(op Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if om, ok := m.operations[op]; ok {
		return om.Calls
	}
	return 0
}

// MetricsSummary is a point-in-time copy of Metrics.
type MetricsSummary struct {
	TotalCalls     int64                 `json:"totalCalls"`
	TotalSuccesses int64                 `json:"totalSuccesses"`
	TotalFailures  int64                 `json:"totalFailures"`
	Operations     []OperationMetricView `json:"operations,omitempty"`
}

// OperationMetricView is a read-only view of one operation's counters.
type OperationMetricView struct {
	Operation     Operation     `json:"operation"`
	Calls         int64         `json:"calls"`
	Successes     int64         `json:"successes"`
	Failures      int64         `json:"failures"`
	TotalDuration time.Duration `json:"totalDuration"`
	LastCallAt    time.Time     `json:"lastCallAt,omitempty"`
	LastFailureAt time.Time     `json:"lastFailureAt,omitempty"`
}

// GetSummary returns the counters sorted by operation name.
func (m *Metrics) GetSummary() MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := MetricsSummary{
		TotalCalls:     m.totalCalls,
		TotalSuccesses: m.totalSuccesses,
		TotalFailures:  m.totalFailures,
	}
	for op, om := range m.operations {
		summary.Operations = append(summary.Operations, OperationMetricView{
			Operation:     op,
			Calls:         om.Calls,
			Successes:     om.Successes,
			Failures:      om.Failures,
			TotalDuration: om.TotalDuration,
			LastCallAt:    om.LastCallAt,
			LastFailureAt: om.LastFailureAt,
		})
	}
	sort.Slice(summary.Operations, func(a, b int) bool {
		return summary.Operations[a].Operation < summary.Operations[b].Operation
	})
	return summary
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.operations = make(map[Operation]*operationMetrics)
	m.totalCalls = 0
	m.totalSuccesses = 0
	m.totalFailures = 0
}
