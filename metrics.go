package posterize

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    quantizeCounter   prometheus.Counter
//	    quantizeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuantize(k, pixels, iterations int, duration time.Duration, err error) {
//	    p.quantizeCounter.Inc()
//	    p.quantizeHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordQuantize is called after each quantize operation.
	// iterations is zero when the call failed before clustering started.
	RecordQuantize(k, pixels, iterations int, duration time.Duration, err error)

	// RecordJob is called after each batch job (load, quantize, store).
	RecordJob(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuantize(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordJob(time.Duration, error)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QuantizeCount      atomic.Int64
	QuantizeErrors     atomic.Int64
	QuantizeTotalNanos atomic.Int64
	QuantizePixels     atomic.Int64
	QuantizeIterations atomic.Int64
	JobCount           atomic.Int64
	JobErrors          atomic.Int64
	JobTotalNanos      atomic.Int64
}

// RecordQuantize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuantize(k, pixels, iterations int, duration time.Duration, err error) {
	b.QuantizeCount.Add(1)
	b.QuantizeTotalNanos.Add(duration.Nanoseconds())
	b.QuantizePixels.Add(int64(pixels))
	b.QuantizeIterations.Add(int64(iterations))
	if err != nil {
		b.QuantizeErrors.Add(1)
	}
}

// RecordJob implements MetricsCollector.
func (b *BasicMetricsCollector) RecordJob(duration time.Duration, err error) {
	b.JobCount.Add(1)
	b.JobTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.JobErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QuantizeCount:      b.QuantizeCount.Load(),
		QuantizeErrors:     b.QuantizeErrors.Load(),
		QuantizeAvgNanos:   avg(b.QuantizeTotalNanos.Load(), b.QuantizeCount.Load()),
		QuantizePixels:     b.QuantizePixels.Load(),
		QuantizeIterations: b.QuantizeIterations.Load(),
		JobCount:           b.JobCount.Load(),
		JobErrors:          b.JobErrors.Load(),
		JobAvgNanos:        avg(b.JobTotalNanos.Load(), b.JobCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QuantizeCount      int64
	QuantizeErrors     int64
	QuantizeAvgNanos   int64
	QuantizePixels     int64
	QuantizeIterations int64
	JobCount           int64
	JobErrors          int64
	JobAvgNanos        int64
}
