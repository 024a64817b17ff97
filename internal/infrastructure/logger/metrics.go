package logger

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type Metrics struct {
	operationsTotal   map[string]*atomic.Int64
	operationsFailed  map[string]*atomic.Int64
	operationsLatency map[string]*atomic.Int64
	mu                sync.Mutex
}

var globalMetrics = newMetrics()

func newMetrics() *Metrics {
	return &Metrics{
		operationsTotal:   make(map[string]*atomic.Int64),
		operationsFailed:  make(map[string]*atomic.Int64),
		operationsLatency: make(map[string]*atomic.Int64),
	}
}

type OperationStats struct {
	Total        int64
	Failed       int64
	AvgLatencyMs float64
}

func counter(m map[string]*atomic.Int64, key string) *atomic.Int64 {
	c, ok := m[key]
	if !ok {
		c = &atomic.Int64{}
		m[key] = c
	}
	return c
}

func RecordOperation(operation string, err error, duration time.Duration) {
	globalMetrics.mu.Lock()
	total := counter(globalMetrics.operationsTotal, operation)
	latency := counter(globalMetrics.operationsLatency, operation)
	var failed *atomic.Int64
	if err != nil {
		failed = counter(globalMetrics.operationsFailed, operation)
	}
	globalMetrics.mu.Unlock()

	total.Add(1)
	latency.Add(duration.Nanoseconds())
	if failed != nil {
		failed.Add(1)
	}
}

func GetMetrics() map[string]OperationStats {
	globalMetrics.mu.Lock()
	defer globalMetrics.mu.Unlock()

	result := make(map[string]OperationStats)
	for op, total := range globalMetrics.operationsTotal {
		stats := OperationStats{
			Total: total.Load(),
		}
		if failed, ok := globalMetrics.operationsFailed[op]; ok {
			stats.Failed = failed.Load()
		}
		if latency, ok := globalMetrics.operationsLatency[op]; ok && stats.Total > 0 {
			stats.AvgLatencyMs = float64(latency.Load()) / float64(stats.Total) / 1e6
		}
		result[op] = stats
	}
	return result
}

// TimedOperation runs fn, records its latency and outcome under operation,
// and logs the result at debug level (errors at warn).
func TimedOperation(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	log := FromContext(ctx).With("call", operation)
	log.Debug("starting call")

	err := fn()
	duration := time.Since(start)

	RecordOperation(operation, err, duration)

	if err != nil {
		log.Warn("call failed", "error", err, "duration", duration)
	} else {
		log.Debug("call completed", "duration", duration)
	}

	return err
}

// LogMetrics writes one debug line per recorded operation, sorted by name.
func LogMetrics(ctx context.Context) {
	stats := GetMetrics()
	ops := make([]string, 0, len(stats))
	for op := range stats {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	log := FromContext(ctx)
	for _, op := range ops {
		s := stats[op]
		log.Debug("api call stats", "call", op, "total", s.Total, "failed", s.Failed, "avg_latency_ms", s.AvgLatencyMs)
	}
}

func ResetMetrics() {
	globalMetrics.mu.Lock()
	defer globalMetrics.mu.Unlock()
	globalMetrics.operationsTotal = make(map[string]*atomic.Int64)
	globalMetrics.operationsFailed = make(map[string]*atomic.Int64)
	globalMetrics.operationsLatency = make(map[string]*atomic.Int64)
}
