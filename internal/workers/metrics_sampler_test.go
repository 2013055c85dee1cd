package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/tests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, percentage(5, 0))
	assert.Equal(t, 0, percentage(-1, 10))
	assert.Equal(t, 25, percentage(1, 4))
	assert.Equal(t, 67, percentage(2, 3))
	assert.Equal(t, 100, percentage(12, 10))
}

func TestMetricsSamplerReadsBoundedValues(t *testing.T) {
	sampler := &MetricsSampler{}
	for range 3 {
		cpu, memory := sampler.read()
		assert.GreaterOrEqual(t, cpu, 0)
		assert.LessOrEqual(t, cpu, 100)
		assert.GreaterOrEqual(t, memory, 0)
		assert.LessOrEqual(t, memory, 100)
	}
}

func TestMetricsSamplerOnlyWritesWhileOnline(t *testing.T) {
	db := tests.NewSQLiteDB(t)
	status := models.SystemStatus{BotStatus: "offline", WebhookStatus: "inactive", DBStatus: "connected", APIStatus: "monitoring", CPUUsage: 5, MemoryUsage: 20}
	require.NoError(t, db.Create(&status).Error)

	sampler := &MetricsSampler{DB: db}

	updated, err := sampler.sample(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)

	var stored models.SystemStatus
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, 5, stored.CPUUsage)
	assert.Equal(t, 20, stored.MemoryUsage)

	require.NoError(t, db.Model(&stored).Update("bot_status", "online").Error)

	updated, err = sampler.sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	require.NoError(t, db.First(&stored).Error)
	assert.LessOrEqual(t, stored.MemoryUsage, 100)
	assert.Equal(t, int64(0), stored.Revision)
}

func TestStartPeriodicWorkerStopsOnCancel(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		StartPeriodicWorker(ctx, "test", 10*time.Millisecond, []WorkerTask{
			{Name: "count", Fn: func(_ context.Context) (int, error) {
				runs.Add(1)
				return 1, nil
			}},
		})
		close(done)
	}()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
