package core

import (
	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/models"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// StartProfiling pushes continuous profiles to Pyroscope. It returns nil when profiling is disabled.
func StartProfiling(config models.ProfilingConfiguration, profile string) *pyroscope.Profiler {
	if !config.Enabled {
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: configuration.AppName,
		ServerAddress:   config.ServerAddress,
		Tags:            map[string]string{"profile": profile},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		zap.L().Error("Failed to start profiler", zap.Error(err))
		return nil
	}

	zap.L().Info("Profiling enabled", zap.String("server_address", config.ServerAddress))
	return profiler
}
