package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAllocatorMetrics() {
	r.AllocationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bytebuilder_allocations_total",
			Help: "Total number of allocator calls",
		},
		[]string{"allocator", "op"}, // op: alloc, resize, free
	)

	r.AllocationFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bytebuilder_allocation_failures_total",
			Help: "Total number of failed Alloc and Resize calls",
		},
		[]string{"allocator"},
	)

	r.AllocatedBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bytebuilder_allocated_bytes_total",
			Help: "Total bytes of capacity handed out by allocators",
		},
		[]string{"allocator"},
	)

	r.LiveBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bytebuilder_live_bytes",
			Help: "Bytes of capacity currently held by buffers",
		},
		[]string{"allocator"},
	)

	r.PoolHitRate = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bytebuilder_pool_hit_rate_percent",
			Help: "Percentage of pool gets served from recycled buffers",
		},
		[]string{"size"},
	)

	r.PoolOversizedTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "bytebuilder_pool_oversized_total",
			Help: "Pool requests too large for any size class",
		},
	)
}
