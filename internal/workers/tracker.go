package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WorkerTask is one step of a periodic worker. Fn reports how many records it touched.
type WorkerTask struct {
	Name string
	Fn   func(ctx context.Context) (int, error)
}

// StartPeriodicWorker runs the tasks immediately, then on every tick until ctx is cancelled.
func StartPeriodicWorker(ctx context.Context, workerName string, interval time.Duration, tasks []WorkerTask) {
	zap.L().Info("Starting worker",
		zap.String("worker", workerName),
		zap.Duration("interval", interval))

	runWorkerCycle(ctx, workerName, tasks)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Worker shutting down", zap.String("worker", workerName))
			return
		case <-ticker.C:
			runWorkerCycle(ctx, workerName, tasks)
		}
	}
}

func runWorkerCycle(ctx context.Context, workerName string, tasks []WorkerTask) {
	start := time.Now()
	fields := []zap.Field{zap.String("worker", workerName)}
	failed := 0

	for _, task := range tasks {
		count, err := task.Fn(ctx)
		if err != nil {
			failed++
			zap.L().Error("Worker task failed",
				zap.String("worker", workerName),
				zap.String("task", task.Name),
				zap.Error(err))
		}
		fields = append(fields, zap.Int(task.Name, count))
	}

	fields = append(fields, zap.Int("failed", failed), zap.Duration("duration", time.Since(start)))
	zap.L().Debug("Worker cycle complete", fields...)
}
