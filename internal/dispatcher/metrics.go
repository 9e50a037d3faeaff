package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/gotodoc/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	keyMetrics map[string]*KeyMetrics

	totalDispatches  uint64
	totalUnsupported uint64
	totalPanics      uint64
	totalDuration    time.Duration
}

// KeyMetrics holds metrics for a specific dispatch key.
type KeyMetrics struct {
	Key           string
	DispatchCount uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastKind      handler.ActionKind
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		keyMetrics: make(map[string]*KeyMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(key string, duration time.Duration, kind handler.ActionKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	if kind == handler.KindUnsupported {
		m.totalUnsupported++
	}

	km := m.keyMetrics[key]
	if km == nil {
		km = &KeyMetrics{Key: key}
		m.keyMetrics[key] = km
	}

	km.DispatchCount++
	km.TotalDuration += duration
	km.LastKind = kind
	km.LastDispatch = time.Now()
	if duration > km.MaxDuration {
		km.MaxDuration = duration
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalUnsupported returns the number of dispatches with no handler.
func (m *Metrics) TotalUnsupported() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalUnsupported
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// KeyStats returns metrics for a specific key.
func (m *Metrics) KeyStats(key string) *KeyMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	km := m.keyMetrics[key]
	if km == nil {
		return nil
	}
	copy := *km
	return &copy
}

// TopKeys returns the top N most dispatched keys.
func (m *Metrics) TopKeys(n int) []*KeyMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]*KeyMetrics, 0, len(m.keyMetrics))
	for _, km := range m.keyMetrics {
		copy := *km
		keys = append(keys, &copy)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DispatchCount != keys[j].DispatchCount {
			return keys[i].DispatchCount > keys[j].DispatchCount
		}
		return keys[i].Key < keys[j].Key
	})

	if n > len(keys) {
		n = len(keys)
	}
	return keys[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keyMetrics = make(map[string]*KeyMetrics)
	m.totalDispatches = 0
	m.totalUnsupported = 0
	m.totalPanics = 0
	m.totalDuration = 0
}
