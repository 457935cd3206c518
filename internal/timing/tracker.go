// Package timing records how long workflow steps take.
package timing

import (
	"sort"
	"sync"
	"time"

	"text-viewer/internal/logger"
)

const component = "Timing"

// Stats summarizes the recorded durations of one operation
type Stats struct {
	Count   int
	Average time.Duration
	Max     time.Duration
}

type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	logger  logger.Logger
	now     func() time.Time
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		logger:  log,
		now:     time.Now,
	}
}

// Start begins timing operation. Call the returned func when it completes.
func (tt *Tracker) Start(operation string) func() {
	start := tt.now()
	return func() {
		tt.Record(operation, tt.now().Sub(start))
	}
}

func (tt *Tracker) Record(operation string, duration time.Duration) {
	tt.mu.Lock()
	tt.timings[operation] = append(tt.timings[operation], duration)
	tt.mu.Unlock()

	tt.logger.Debug(component, "operation completed", map[string]interface{}{
		"operation":   operation,
		"duration_ms": duration.Milliseconds(),
	})
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) Stats(operation string) Stats {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return Stats{}
	}

	var total, max time.Duration
	for _, d := range timings {
		total += d
		if d > max {
			max = d
		}
	}
	return Stats{
		Count:   len(timings),
		Average: total / time.Duration(len(timings)),
		Max:     max,
	}
}

// Operations returns the names of every timed operation, sorted
func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Reset clears operation, or everything when operation is empty
func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}

// Shutdown logs a summary of every operation
func (tt *Tracker) Shutdown() {
	for _, op := range tt.Operations() {
		s := tt.Stats(op)
		tt.logger.Info(component, "timing summary", map[string]interface{}{
			"operation": op,
			"count":     s.Count,
			"avg_ms":    s.Average.Milliseconds(),
			"max_ms":    s.Max.Milliseconds(),
		})
	}
}
