package pipeline

import (
	"sync"
	"time"
)

// maxRecentDurations bounds the processing times kept for the recent average.
const maxRecentDurations = 100

// MetricsData is a snapshot of Metrics without the mutex (safe for copying).
type MetricsData struct {
	DocumentsProcessed    int64            `json:"documents_processed"`
	DocumentsFailed       int64            `json:"documents_failed"`
	FailuresByKind        map[string]int64 `json:"failures_by_kind"`
	TotalProcessingTime   time.Duration    `json:"total_processing_time_ns"`
	AverageProcessingTime time.Duration    `json:"average_processing_time_ns"`
	RecentProcessingTime  time.Duration    `json:"recent_processing_time_ns"`
	LastUpdated           time.Time        `json:"last_updated"`
}

// Metrics tracks document throughput and failures of a Pipeline.
type Metrics struct {
	mu                    sync.RWMutex
	documentsProcessed    int64
	documentsFailed       int64
	failuresByKind        map[string]int64
	totalProcessingTime   time.Duration
	averageProcessingTime time.Duration
	recent                []time.Duration
	lastUpdated           time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		failuresByKind: make(map[string]int64),
		lastUpdated:    time.Now(),
	}
}

// RecordProcessed records a successfully processed document.
func (m *Metrics) RecordProcessed(took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documentsProcessed++
	m.totalProcessingTime += took
	m.averageProcessingTime = m.totalProcessingTime / time.Duration(m.documentsProcessed)

	m.recent = append(m.recent, took)
	if len(m.recent) > maxRecentDurations {
		m.recent = m.recent[1:]
	}
	m.lastUpdated = time.Now()
}

// RecordFailed records a document that failed with an error of the given kind.
func (m *Metrics) RecordFailed(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documentsFailed++
	m.failuresByKind[kind]++
	m.lastUpdated = time.Now()
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() MetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	failures := make(map[string]int64, len(m.failuresByKind))
	for k, v := range m.failuresByKind {
		failures[k] = v
	}

	var recent time.Duration
	if len(m.recent) > 0 {
		var total time.Duration
		for _, d := range m.recent {
			total += d
		}
		recent = total / time.Duration(len(m.recent))
	}

	return MetricsData{
		DocumentsProcessed:    m.documentsProcessed,
		DocumentsFailed:       m.documentsFailed,
		FailuresByKind:        failures,
		TotalProcessingTime:   m.totalProcessingTime,
		AverageProcessingTime: m.averageProcessingTime,
		RecentProcessingTime:  recent,
		LastUpdated:           m.lastUpdated,
	}
}

// SuccessRate returns the share of documents processed without error (1.0 when none were seen).
func (m *Metrics) SuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.documentsProcessed + m.documentsFailed
	if total == 0 {
		return 1.0
	}
	return float64(m.documentsProcessed) / float64(total)
}
