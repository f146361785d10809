package metrics

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/common/expfmt"

	"github.com/dd0wney/bytebuilder/pkg/pools"
)

// RecordAllocation records an allocator call that handed out bytes of new
// capacity and changed the live total by delta.
func (r *Registry) RecordAllocation(allocator, op string, bytes, delta int) {
	r.AllocationsTotal.WithLabelValues(allocator, op).Inc()
	if bytes > 0 {
		r.AllocatedBytesTotal.WithLabelValues(allocator).Add(float64(bytes))
	}
	if delta != 0 {
		r.LiveBytes.WithLabelValues(allocator).Add(float64(delta))
	}
}

// RecordAllocationFailure records a failed Alloc or Resize
func (r *Registry) RecordAllocationFailure(allocator string) {
	r.AllocationFailuresTotal.WithLabelValues(allocator).Inc()
}

// RecordWrite records n bytes accepted by a stream, and whether the write
// was cut short by a full buffer
func (r *Registry) RecordWrite(n int, short bool) {
	if n > 0 {
		r.BytesWrittenTotal.Add(float64(n))
	}
	if short {
		r.ShortWritesTotal.Inc()
	}
}

// UpdatePoolMetrics copies a pool's hit rates into the per-class gauges
func (r *Registry) UpdatePoolMetrics(p *pools.BytePool) {
	stats := p.Stats()
	for _, c := range stats.Classes {
		r.PoolHitRate.WithLabelValues(strconv.Itoa(c.Size)).Set(c.HitRate)
	}
	r.PoolOversizedTotal.Set(float64(stats.Oversized))
}

// UpdateSystemMetrics refreshes process metrics
func (r *Registry) UpdateSystemMetrics(start time.Time) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
	r.MemorySysBytes.Set(float64(mem.Sys))
}

// WriteText writes every registered metric to w in the Prometheus text
// exposition format
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
