package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryMetrics_RecordAndSnapshot(t *testing.T) {
	m := NewQueryMetrics(100 * time.Millisecond)

	m.Record("query", 20*time.Millisecond)
	m.Record("query", 40*time.Millisecond)
	m.Record("create", 150*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Operations["query"].Count)
	assert.Equal(t, float64(30), snap.Operations["query"].AvgMillis)
	assert.Equal(t, int64(1), snap.Operations["create"].Count)
	assert.Equal(t, int64(1), snap.SlowQueries)
}

func TestQueryMetrics_DefaultThreshold(t *testing.T) {
	m := NewQueryMetrics(0)
	assert.Equal(t, 200*time.Millisecond, m.SlowThreshold)
}

func TestQueryMetrics_EmptySnapshot(t *testing.T) {
	m := NewQueryMetrics(time.Second)
	snap := m.Snapshot()
	assert.Empty(t, snap.Operations)
	assert.Zero(t, snap.SlowQueries)
}
