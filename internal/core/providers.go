package core

import (
	"github.com/botpanel/botpanel/internal/activity"
	c "github.com/botpanel/botpanel/internal/cache"
	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger replaces the global logger with a production logger at the given level.
func NewLogger(level string) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		zap.L().Fatal("Invalid log level", zap.String("level", level), zap.Error(err))
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := config.Build()
	if err != nil {
		zap.L().Fatal("Failed to build logger", zap.Error(err))
	}
	zap.ReplaceGlobals(logger)
}

// NewCache returns nil when no cache is configured. Rate limiting and worker locks are then local.
func NewCache(config models.CacheConfiguration) c.ICache {
	var (
		cache c.ICache
		err   error
	)

	switch config.Type {
	case configuration.CacheRedis:
		cache, err = c.NewRedisCache(*config.Redis)
	case configuration.CacheValkey:
		cache, err = c.NewValkeyCache(*config.Valkey)
	default:
		zap.L().Info("Cache disabled")
		return nil
	}

	if err != nil {
		zap.L().Fatal("Failed to connect to cache", zap.String("type", config.Type), zap.Error(err))
	}
	return cache
}

func NewActivityLogger(config models.ActivityConfiguration) activity.IActivityLogger {
	if config.Type != configuration.ActivityFS {
		zap.L().Info("Activity logging disabled")
		return activity.NoopClient{}
	}

	client, err := activity.NewFilesystemClient(config.Filesystem.Directory)
	if err != nil {
		zap.L().Fatal("Failed to open activity index", zap.String("directory", config.Filesystem.Directory), zap.Error(err))
	}
	return client
}
