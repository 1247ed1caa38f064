package database

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// QueryMetrics is a gorm plugin that accumulates per-operation latency in
// memory. It is owned by whoever opens the connection and handed in through
// Connect, so tests can install their own collector or none at all. State is
// process-local and resets on restart.
type QueryMetrics struct {
	SlowThreshold time.Duration

	mu          sync.Mutex
	totals      map[string]time.Duration
	counts      map[string]int64
	slowQueries int64
}

func NewQueryMetrics(slowThreshold time.Duration) *QueryMetrics {
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	return &QueryMetrics{
		SlowThreshold: slowThreshold,
		totals:        make(map[string]time.Duration),
		counts:        make(map[string]int64),
	}
}

func (m *QueryMetrics) Name() string { return "query_metrics" }

func (m *QueryMetrics) Initialize(db *gorm.DB) error {
	callbacks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", db.Callback().Create().Before("gorm:create").Register, db.Callback().Create().After("gorm:create").Register},
		{"query", db.Callback().Query().Before("gorm:query").Register, db.Callback().Query().After("gorm:query").Register},
		{"update", db.Callback().Update().Before("gorm:update").Register, db.Callback().Update().After("gorm:update").Register},
		{"delete", db.Callback().Delete().Before("gorm:delete").Register, db.Callback().Delete().After("gorm:delete").Register},
		{"row", db.Callback().Row().Before("gorm:row").Register, db.Callback().Row().After("gorm:row").Register},
		{"raw", db.Callback().Raw().Before("gorm:raw").Register, db.Callback().Raw().After("gorm:raw").Register},
	}

	for _, cb := range callbacks {
		op := cb.op
		if err := cb.before("metrics:before_"+op, m.start); err != nil {
			return err
		}
		if err := cb.after("metrics:after_"+op, m.finish(op)); err != nil {
			return err
		}
	}
	return nil
}

func (m *QueryMetrics) start(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func (m *QueryMetrics) finish(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		started, ok := v.(time.Time)
		if !ok {
			return
		}
		m.Record(op, time.Since(started))
	}
}

func (m *QueryMetrics) Record(op string, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals[op] += elapsed
	m.counts[op]++
	if elapsed >= m.SlowThreshold {
		m.slowQueries++
	}
}

type MetricsSnapshot struct {
	Operations  map[string]OperationStats `json:"operations"`
	SlowQueries int64                     `json:"slow_queries"`
}

type OperationStats struct {
	Count     int64   `json:"count"`
	AvgMillis float64 `json:"avg_ms"`
}

func (m *QueryMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Operations:  make(map[string]OperationStats, len(m.counts)),
		SlowQueries: m.slowQueries,
	}
	for op, count := range m.counts {
		avg := float64(m.totals[op].Milliseconds()) / float64(count)
		snap.Operations[op] = OperationStats{Count: count, AvgMillis: avg}
	}
	return snap
}
