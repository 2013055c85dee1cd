package workers

import (
	"context"
	"math"
	"runtime/metrics"
	"sync"
	"time"

	"github.com/botpanel/botpanel/internal/sql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	cpuTotalMetric   = "/cpu/classes/total:cpu-seconds"
	cpuIdleMetric    = "/cpu/classes/idle:cpu-seconds"
	heapObjectMetric = "/memory/classes/heap/objects:bytes"
	memoryTotal      = "/memory/classes/total:bytes"
)

// MetricsSampler refreshes the CPU and memory gauges of the status record from the Go runtime.
type MetricsSampler struct {
	DB          *gorm.DB
	RunInterval time.Duration

	mu        sync.Mutex
	lastTotal float64
	lastIdle  float64
}

func (w *MetricsSampler) Start(ctx context.Context) {
	StartPeriodicWorker(ctx, "metrics_sampler", w.RunInterval, []WorkerTask{
		{Name: "status_updated", Fn: w.sample},
	})
}

func (w *MetricsSampler) sample(_ context.Context) (int, error) {
	cpu, memory := w.read()

	updated, err := sql.UpdateRunningMetrics(w.DB, cpu, memory)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		zap.L().Debug("Bot not online, metrics sample skipped")
	}
	return int(updated), nil
}

// read returns CPU usage since the previous call and the share of mapped memory holding live heap objects,
// both as whole percentages.
func (w *MetricsSampler) read() (int, int) {
	samples := []metrics.Sample{
		{Name: cpuTotalMetric},
		{Name: cpuIdleMetric},
		{Name: heapObjectMetric},
		{Name: memoryTotal},
	}
	metrics.Read(samples)

	total := float64Value(samples[0])
	idle := float64Value(samples[1])

	w.mu.Lock()
	deltaTotal := total - w.lastTotal
	deltaIdle := idle - w.lastIdle
	w.lastTotal, w.lastIdle = total, idle
	w.mu.Unlock()

	return percentage(deltaTotal-deltaIdle, deltaTotal),
		percentage(float64(uint64Value(samples[2])), float64(uint64Value(samples[3])))
}

func percentage(part, whole float64) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return int(math.Min(100, math.Round(part/whole*100)))
}

func float64Value(s metrics.Sample) float64 {
	if s.Value.Kind() != metrics.KindFloat64 {
		return 0
	}
	return s.Value.Float64()
}

func uint64Value(s metrics.Sample) uint64 {
	if s.Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return s.Value.Uint64()
}
