package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStreamMetrics() {
	r.BytesWrittenTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "bytebuilder_stream_bytes_written_total",
			Help: "Total bytes accepted by instrumented streams",
		},
	)

	r.ShortWritesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "bytebuilder_stream_short_writes_total",
			Help: "Writes truncated because a fixed-capacity stream was full",
		},
	)
}
