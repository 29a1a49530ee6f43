package arkiv

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordMarshal is called after each marshal operation.
	// bytes is the archive size on success, duration the total time taken,
	// err nil if successful.
	RecordMarshal(bytes int, duration time.Duration, err error)

	// RecordValidate is called after each validation pass.
	RecordValidate(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMarshal(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordValidate(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	MarshalCount       atomic.Int64
	MarshalErrors      atomic.Int64
	MarshalBytes       atomic.Int64
	MarshalTotalNanos  atomic.Int64
	ValidateCount      atomic.Int64
	ValidateErrors     atomic.Int64
	ValidateTotalNanos atomic.Int64
}

// RecordMarshal implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMarshal(bytes int, duration time.Duration, err error) {
	b.MarshalCount.Add(1)
	b.MarshalTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MarshalErrors.Add(1)
		return
	}
	b.MarshalBytes.Add(int64(bytes))
}

// RecordValidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidate(bytes int, duration time.Duration, err error) {
	b.ValidateCount.Add(1)
	b.ValidateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ValidateErrors.Add(1)
	}
}
