package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/pools"
	"github.com/dd0wney/bytebuilder/pkg/stream"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.AllocationsTotal == nil {
		t.Error("AllocationsTotal not initialized")
	}
	if r.LiveBytes == nil {
		t.Error("LiveBytes not initialized")
	}
	if r.BytesWrittenTotal == nil {
		t.Error("BytesWrittenTotal not initialized")
	}
	if r.UptimeSeconds == nil {
		t.Error("UptimeSeconds not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordAllocation(t *testing.T) {
	r := NewRegistry()

	r.RecordAllocation("pool", "alloc", 64, 64)
	r.RecordAllocation("pool", "resize", 64, 64)
	r.RecordAllocation("pool", "free", 0, -128)

	if got := counterValue(t, r.AllocationsTotal.WithLabelValues("pool", "alloc")); got != 1 {
		t.Errorf("alloc counter = %v, want 1", got)
	}
	if got := counterValue(t, r.AllocatedBytesTotal.WithLabelValues("pool")); got != 128 {
		t.Errorf("allocated bytes = %v, want 128", got)
	}
	if got := gaugeValue(t, r.LiveBytes.WithLabelValues("pool")); got != 0 {
		t.Errorf("live bytes = %v, want 0", got)
	}
}

func TestInstrument_Builder(t *testing.T) {
	r := NewRegistry()
	a := r.Instrument(pools.Limited(pools.Heap, 64), "test")

	b, err := builder.NewLenCap(0, 16, a)
	if err != nil {
		t.Fatalf("NewLenCap error = %v", err)
	}
	if got := gaugeValue(t, r.LiveBytes.WithLabelValues("test")); got != 16 {
		t.Errorf("live bytes after alloc = %v, want 16", got)
	}

	// 17 bytes grow the builder to 2*16+8 = 40 bytes
	b.AppendString(strings.Repeat("x", 17))
	if got := gaugeValue(t, r.LiveBytes.WithLabelValues("test")); got != 40 {
		t.Errorf("live bytes after resize = %v, want 40", got)
	}
	if got := counterValue(t, r.AllocatedBytesTotal.WithLabelValues("test")); got != 40 {
		t.Errorf("allocated bytes = %v, want 40", got)
	}

	// Growing past the 64 byte budget fails and is counted
	b.AppendString(strings.Repeat("y", 100))
	if b.Err() == nil {
		t.Error("expected an allocation failure")
	}
	if got := counterValue(t, r.AllocationFailuresTotal.WithLabelValues("test")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}

	b.Release()
	if got := gaugeValue(t, r.LiveBytes.WithLabelValues("test")); got != 0 {
		t.Errorf("live bytes after release = %v, want 0", got)
	}
	if got := counterValue(t, r.AllocationsTotal.WithLabelValues("test", "free")); got != 1 {
		t.Errorf("free counter = %v, want 1", got)
	}
}

func TestInstrument_DefaultName(t *testing.T) {
	r := NewRegistry()
	a := r.Instrument(pools.NewBytePool(), "")

	buf, err := a.Alloc(10)
	if err != nil {
		t.Fatalf("Alloc error = %v", err)
	}
	a.Free(buf)

	if got := counterValue(t, r.AllocationsTotal.WithLabelValues("pool", "alloc")); got != 1 {
		t.Errorf("alloc counter = %v, want 1", got)
	}
}

func TestStream_CountsWrites(t *testing.T) {
	r := NewRegistry()
	s := r.Stream(builder.FromBytes(make([]byte, 4)))

	n, err := s.Write([]byte("abcdef"))
	if n != 4 || err == nil {
		t.Errorf("Write = (%d, %v), want (4, ErrFull)", n, err)
	}
	if err := s.WriteByte('x'); err == nil {
		t.Error("WriteByte on a full stream should fail")
	}
	if _, err := stream.WriteString(s, "y"); err == nil {
		t.Error("WriteString on a full stream should fail")
	}

	if got := counterValue(t, r.BytesWrittenTotal); got != 4 {
		t.Errorf("bytes written = %v, want 4", got)
	}
	if got := counterValue(t, r.ShortWritesTotal); got != 3 {
		t.Errorf("short writes = %v, want 3", got)
	}
	if s.Size() != 4 {
		t.Errorf("Size() = %d, want 4", s.Size())
	}
	if err := s.Destroy(); err != nil {
		t.Errorf("Destroy() error = %v", err)
	}
}

func TestUpdatePoolMetrics(t *testing.T) {
	r := NewRegistry()
	p := pools.NewBytePool()

	p.Get(pools.TinySize)
	p.Get(pools.MaxPool * 2)

	r.UpdatePoolMetrics(p)

	if got := gaugeValue(t, r.PoolOversizedTotal); got != 1 {
		t.Errorf("oversized = %v, want 1", got)
	}
	// A single cold get is a miss
	if got := gaugeValue(t, r.PoolHitRate.WithLabelValues("16")); got != 0 {
		t.Errorf("hit rate = %v, want 0", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if got := gaugeValue(t, r.UptimeSeconds); got < 60 {
		t.Errorf("uptime = %v, want >= 60", got)
	}
	if got := gaugeValue(t, r.GoRoutines); got < 1 {
		t.Errorf("goroutines = %v, want >= 1", got)
	}
	if got := gaugeValue(t, r.MemorySysBytes); got <= 0 {
		t.Errorf("sys bytes = %v, want > 0", got)
	}
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.RecordWrite(12, false)

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "bytebuilder_stream_bytes_written_total 12") {
		t.Errorf("exposition missing bytes written:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE bytebuilder_uptime_seconds gauge") {
		t.Errorf("exposition missing uptime gauge:\n%s", out)
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	// Verify we can gather metrics
	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	if len(metrics) == 0 {
		t.Error("No metrics registered")
	}

	// Verify some expected metrics exist
	expectedMetrics := []string{
		"bytebuilder_stream_bytes_written_total",
		"bytebuilder_pool_oversized_total",
		"bytebuilder_uptime_seconds",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()
	a := r.Instrument(pools.NewBytePool(), "pool")

	// Simulate concurrent builders sharing one allocator
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				b, err := builder.New(a)
				if err == nil {
					b.AppendString("concurrent")
					b.Release()
				}
			}
			done <- true
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	if got := counterValue(t, r.AllocationsTotal.WithLabelValues("pool", "alloc")); got != 1000 {
		t.Errorf("alloc counter = %v, want 1000", got)
	}
	if got := gaugeValue(t, r.LiveBytes.WithLabelValues("pool")); got != 0 {
		t.Errorf("live bytes = %v, want 0", got)
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Verify all metrics have the bytebuilder_ prefix
	for _, m := range metrics {
		name := m.GetName()
		if !strings.HasPrefix(name, "bytebuilder_") {
			t.Errorf("Metric %s does not have bytebuilder_ prefix", name)
		}
	}
}

func BenchmarkInstrumentedAlloc(b *testing.B) {
	r := NewRegistry()
	a := r.Instrument(pools.NewBytePool(), "pool")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ := a.Alloc(64)
		a.Free(buf)
	}
}

func BenchmarkRecordWrite(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordWrite(64, false)
	}
}
